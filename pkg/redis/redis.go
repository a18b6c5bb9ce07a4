package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("redis: key not found")

type IRedis interface {
	SetOutcomeNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)
	GetOutcome(ctx context.Context, key string) (string, error)
	DeleteOutcome(ctx context.Context, key string) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

// SetOutcomeNX stores the value only when the key does not exist yet.
// Returns true when this call performed the write.
func (r *redisClient) SetOutcomeNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, expiration).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error setting outcome for key %s: %v", key, err))
		return false, err
	}
	if !ok {
		logrus.Debug(fmt.Sprintf("Outcome for key %s already recorded, keeping first write", key))
	}
	return ok, nil
}

func (r *redisClient) GetOutcome(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting outcome for key %s: %v", key, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) DeleteOutcome(ctx context.Context, key string) error {
	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting outcome for key %s: %v", key, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Outcome key %s not found for deletion", key))
		return nil
	}

	return nil
}

package approvalStore

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"

	"ProjectAdvisor/internal/entity"
	redisPkg "ProjectAdvisor/pkg/redis"
)

const (
	outcomeKeyPrefix = "approval:outcome:"
	outcomeTTL       = 15 * time.Minute
)

// redisStore shares pending outcomes across instances so the webhook can
// land on a different process than the reconciler polling for it.
type redisStore struct {
	redis redisPkg.IRedis
	json  jsoniter.API
}

func NewRedisStore(redis redisPkg.IRedis) PendingStore {
	return &redisStore{
		redis: redis,
		json:  jsoniter.ConfigCompatibleWithStandardLibrary,
	}
}

func (s *redisStore) Put(ctx context.Context, callID string, outcome entity.SpeechOutcome) (bool, error) {
	payload, err := s.json.Marshal(outcome)
	if err != nil {
		return false, err
	}

	return s.redis.SetOutcomeNX(ctx, outcomeKeyPrefix+callID, string(payload), outcomeTTL)
}

func (s *redisStore) Get(ctx context.Context, callID string) (entity.SpeechOutcome, bool, error) {
	var outcome entity.SpeechOutcome

	payload, err := s.redis.GetOutcome(ctx, outcomeKeyPrefix+callID)
	if errors.Is(err, redisPkg.ErrNotFound) {
		return outcome, false, nil
	}
	if err != nil {
		return outcome, false, err
	}

	if err := s.json.UnmarshalFromString(payload, &outcome); err != nil {
		return outcome, false, err
	}

	return outcome, true, nil
}

func (s *redisStore) Remove(ctx context.Context, callID string) error {
	return s.redis.DeleteOutcome(ctx, outcomeKeyPrefix+callID)
}

package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"ProjectAdvisor/database/postgres"
	"ProjectAdvisor/internal/api/approval"
	approvalHandler "ProjectAdvisor/internal/api/approval/handler"
	approvalRepository "ProjectAdvisor/internal/api/approval/repository"
	approvalService "ProjectAdvisor/internal/api/approval/service"
	approvalStore "ProjectAdvisor/internal/api/approval/store"
	recommendationHandler "ProjectAdvisor/internal/api/recommendation/handler"
	recommendationService "ProjectAdvisor/internal/api/recommendation/service"
	"ProjectAdvisor/internal/middleware"
	"ProjectAdvisor/pkg/gemini"
	"ProjectAdvisor/pkg/marketdata"
	"ProjectAdvisor/pkg/openai"
	redisPkg "ProjectAdvisor/pkg/redis"
	"ProjectAdvisor/pkg/sentiment"
	"ProjectAdvisor/pkg/utils"
	"ProjectAdvisor/pkg/voice"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	redisServer    redisPkg.IRedis
	geminiClient   gemini.IGemini
	approvalConfig approvalService.Config
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects when DATABASE_URL (or DB_HOST) is set; approval
// auditing is skipped otherwise.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
			if s.log != nil {
				s.log.Info("No database configured, approval audit disabled")
			}
			return nil
		}

		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redisPkg.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithGeminiClient is optional; a missing API key only disables the
// LLM-written market summary.
func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Gemini client unavailable: %v", err)
			}
			return nil
		}
		s.geminiClient = client
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	voiceEnv := NewVoiceEnv()
	s.approvalConfig = NewApprovalConfig(voiceEnv)

	store := s.buildPendingStore(voiceEnv)

	audioStore, err := s.buildAudioStore(voiceEnv)
	if err != nil {
		return err
	}

	var channel voice.Channel
	if voiceEnv.Configured() {
		tts := voice.NewTTSService(voiceEnv.TTSAPIKey, voiceEnv.TTSVoiceID)
		callAPI := voice.NewCallAPI(voiceEnv.AccountSID, voiceEnv.AuthToken)
		channel = voice.NewChannel(s.log, tts, audioStore, callAPI, voiceEnv.FromNumber)
	}

	var approvalRepo approvalRepository.Repository
	if s.db != nil {
		approvalRepo = approvalRepository.New(s.db, s.log)
	}

	// Approval Domain
	approvalServices := approvalService.New(
		s.log,
		store,
		approval.NewKeywordClassifier(),
		channel,
		audioStore,
		approvalRepo,
		s.utils,
		s.approvalConfig,
	)
	approvalHandlers := approvalHandler.New(s.log, s.validator, s.middleware, approvalServices)

	// Recommendation Domain
	recommendationServices := recommendationService.New(
		s.log,
		marketdata.NewYahooClient(),
		marketdata.NewMockClient(),
		sentiment.NewScorer(),
		openai.NewRecommender(),
		s.geminiClient,
		approvalServices,
		s.utils,
		NewRecommendationConfig(),
	)
	recommendationHandlers := recommendationHandler.New(s.log, s.validator, s.middleware, recommendationServices)

	s.setupHealthCheck()
	s.setupConfigEcho()
	s.handlers = append(s.handlers, approvalHandlers, recommendationHandlers)

	return nil
}

// buildPendingStore picks the outcome store implementation: redis when
// configured for split deployments, a remote HTTP reader when this process
// only places calls, otherwise the in-process map.
func (s *Server) buildPendingStore(voiceEnv VoiceEnv) approvalStore.PendingStore {
	switch voiceEnv.StoreKind {
	case "redis":
		if s.redisServer != nil {
			return approvalStore.NewRedisStore(s.redisServer)
		}
		s.log.Warn("Redis pending store requested but redis is not configured, using memory store")
	case "http":
		if voiceEnv.RemoteStore != "" {
			return approvalStore.NewHTTPStore(voiceEnv.RemoteStore)
		}
		s.log.Warn("HTTP pending store requested but APPROVAL_RESULT_BASE_URL is empty, using memory store")
	}

	return approvalStore.NewMemoryStore()
}

func (s *Server) buildAudioStore(voiceEnv VoiceEnv) (voice.AudioStore, error) {
	if voiceEnv.AudioStore == "s3" {
		store, err := voice.NewS3AudioStore()
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 audio store: %w", err)
		}
		return store, nil
	}

	store, err := voice.NewLocalAudioStore(voiceEnv.AudioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create local audio store: %w", err)
	}
	return store, nil
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

// setupConfigEcho publishes the non-secret runtime configuration so
// operators can see which approval path is active.
func (s *Server) setupConfigEcho() {
	s.engine.Get("/api/v1/config", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"mock_mode":        s.approvalConfig.MockMode,
			"voice_configured": s.approvalConfig.VoiceConfigured,
			"poll_interval":    s.approvalConfig.PollInterval.String(),
			"poll_deadline":    s.approvalConfig.PollDeadline.String(),
			"audit_enabled":    s.db != nil,
		})
	})
}

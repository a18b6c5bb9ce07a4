package approvalService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"ProjectAdvisor/internal/api/approval"
	approvalRepository "ProjectAdvisor/internal/api/approval/repository"
	approvalStore "ProjectAdvisor/internal/api/approval/store"
	"ProjectAdvisor/pkg/utils"
	"ProjectAdvisor/pkg/voice"
)

type IApprovalService interface {
	RequestApproval(ctx context.Context, req approval.RequestApprovalRequest) (*approval.ApprovalResponse, error)
	HandleGatherCallback(ctx context.Context, req approval.GatherCallbackRequest) (string, error)
	GetCallResult(ctx context.Context, callID string) (*approval.CallResultResponse, error)
	ServeAudioFile(ctx context.Context, filename string) ([]byte, error)
	GetApprovalHistory(ctx context.Context, page, limit int) (*approval.ApprovalHistoryResponse, error)
}

// Config is the reconciliation configuration. Durations are injectable so
// tests can shrink the polling window from seconds to milliseconds.
type Config struct {
	MockMode        bool
	MockDelay       time.Duration
	MockApprove     bool
	PollInterval    time.Duration
	PollDeadline    time.Duration
	Recipient       string
	ManagerName     string
	CallbackBaseURL string
	VoiceConfigured bool
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.PollDeadline <= 0 {
		c.PollDeadline = 60 * time.Second
	}
	if c.MockDelay < 0 {
		c.MockDelay = 0
	}
	return c
}

type approvalService struct {
	log        *logrus.Logger
	store      approvalStore.PendingStore
	classifier approval.Classifier
	channel    voice.Channel
	audioStore voice.AudioStore
	repo       approvalRepository.Repository
	utils      utils.IUtils
	config     Config
}

// New wires the reconciler. repo may be nil when no database is configured;
// audit persistence is then skipped.
func New(
	log *logrus.Logger,
	store approvalStore.PendingStore,
	classifier approval.Classifier,
	channel voice.Channel,
	audioStore voice.AudioStore,
	repo approvalRepository.Repository,
	utils utils.IUtils,
	config Config,
) IApprovalService {
	return &approvalService{
		log:        log,
		store:      store,
		classifier: classifier,
		channel:    channel,
		audioStore: audioStore,
		repo:       repo,
		utils:      utils,
		config:     config.withDefaults(),
	}
}

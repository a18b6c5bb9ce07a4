package approvalService

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectAdvisor/internal/api/approval"
	approvalStore "ProjectAdvisor/internal/api/approval/store"
	"ProjectAdvisor/internal/entity"
	"ProjectAdvisor/pkg/utils"
)

type fakeChannel struct {
	callID string
	err    error
	placed int32
}

func (f *fakeChannel) PlaceCall(_ context.Context, _, _, _ string) (string, error) {
	atomic.AddInt32(&f.placed, 1)
	if f.err != nil {
		return "", f.err
	}
	return f.callID, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func voiceConfig() Config {
	return Config{
		PollInterval:    10 * time.Millisecond,
		PollDeadline:    500 * time.Millisecond,
		Recipient:       "+15551234567",
		CallbackBaseURL: "https://advisor.example.com",
		VoiceConfigured: true,
	}
}

func newTestService(channel *fakeChannel, config Config) (IApprovalService, approvalStore.PendingStore) {
	store := approvalStore.NewMemoryStore()
	svc := New(
		quietLogger(),
		store,
		approval.NewKeywordClassifier(),
		channel,
		nil,
		nil,
		utils.New(),
		config,
	)
	return svc, store
}

func TestRequestApproval_MockMode(t *testing.T) {
	config := Config{
		MockMode:    true,
		MockDelay:   20 * time.Millisecond,
		MockApprove: true,
	}
	svc, _ := newTestService(&fakeChannel{callID: "CA-unused"}, config)

	start := time.Now()
	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodMock, result.Method)
	assert.Equal(t, entity.DecisionApproved, result.Decision)
	assert.True(t, result.Approved)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestRequestApproval_MockModeRejecting(t *testing.T) {
	config := Config{
		MockMode:    true,
		MockApprove: false,
	}
	svc, _ := newTestService(&fakeChannel{}, config)

	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodMock, result.Method)
	assert.Equal(t, entity.DecisionRejected, result.Decision)
	assert.False(t, result.Approved)
}

func TestRequestApproval_UnconfiguredVoiceUsesMock(t *testing.T) {
	config := Config{VoiceConfigured: false, MockApprove: true}
	channel := &fakeChannel{callID: "CA1"}
	svc, _ := newTestService(channel, config)

	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodMock, result.Method)
	assert.Zero(t, atomic.LoadInt32(&channel.placed))
}

func TestRequestApproval_MissingCallbackBase(t *testing.T) {
	config := voiceConfig()
	config.CallbackBaseURL = ""
	channel := &fakeChannel{callID: "CA1"}
	svc, _ := newTestService(channel, config)

	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodAutoRejectedConf, result.Method)
	assert.Equal(t, entity.DecisionRejected, result.Decision)
	assert.False(t, result.Approved)
	assert.Zero(t, atomic.LoadInt32(&channel.placed), "no call may be placed without a callback base")
}

func TestRequestApproval_InvalidRecipient(t *testing.T) {
	config := voiceConfig()
	config.Recipient = "not-a-number"
	svc, _ := newTestService(&fakeChannel{callID: "CA1"}, config)

	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodAutoRejectedConf, result.Method)
	assert.False(t, result.Approved)
}

func TestRequestApproval_CallerSuppliedRecipientInvalid(t *testing.T) {
	channel := &fakeChannel{callID: "CA1"}
	svc, _ := newTestService(channel, voiceConfig())

	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary:   "Buy 3 stocks",
		Recipient: "not-a-number",
	})
	require.ErrorIs(t, err, approval.ErrInvalidRecipient)
	assert.Nil(t, result)
	assert.Equal(t, int32(0), atomic.LoadInt32(&channel.placed))
}

func TestRequestApproval_CallPlacementFails(t *testing.T) {
	channel := &fakeChannel{err: errors.New("provider unavailable")}
	svc, _ := newTestService(channel, voiceConfig())

	start := time.Now()
	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodVoiceCallFailed, result.Method)
	assert.Equal(t, entity.DecisionRejected, result.Decision)
	assert.Less(t, time.Since(start), 100*time.Millisecond, "placement failure must not poll")
}

func TestRequestApproval_CallbackArrives(t *testing.T) {
	channel := &fakeChannel{callID: "CA777"}
	svc, store := newTestService(channel, voiceConfig())

	go func() {
		time.Sleep(50 * time.Millisecond)
		_, _ = store.Put(context.Background(), "CA777", entity.SpeechOutcome{
			CallID:     "CA777",
			Transcript: "yes go ahead",
			Confidence: 0.93,
			Decision:   entity.DecisionApproved,
			ReceivedAt: time.Now(),
		})
	}()

	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodVoiceCompleted, result.Method)
	assert.Equal(t, entity.DecisionApproved, result.Decision)
	assert.True(t, result.Approved)
	assert.Equal(t, "yes go ahead", result.Transcript)
	assert.Equal(t, "CA777", result.CallID)

	// the consumed outcome must be removed
	_, found, err := store.Get(context.Background(), "CA777")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRequestApproval_UnclearOutcomeRejects(t *testing.T) {
	channel := &fakeChannel{callID: "CA888"}
	svc, store := newTestService(channel, voiceConfig())

	go func() {
		time.Sleep(30 * time.Millisecond)
		_, _ = store.Put(context.Background(), "CA888", entity.SpeechOutcome{
			CallID:     "CA888",
			Transcript: "hmm banana",
			Decision:   entity.DecisionUnclear,
			ReceivedAt: time.Now(),
		})
	}()

	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodVoiceCompleted, result.Method)
	assert.Equal(t, entity.DecisionRejected, result.Decision)
	assert.False(t, result.Approved)
	assert.Equal(t, "unclear", result.Notes)
}

func TestRequestApproval_Timeout(t *testing.T) {
	config := voiceConfig()
	config.PollDeadline = 120 * time.Millisecond
	channel := &fakeChannel{callID: "CA999"}
	svc, _ := newTestService(channel, config)

	start := time.Now()
	result, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	elapsed := time.Since(start)
	assert.Equal(t, entity.MethodVoiceTimeout, result.Method)
	assert.Equal(t, entity.DecisionRejected, result.Decision)
	assert.GreaterOrEqual(t, elapsed, 120*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond, "timeout must stay near the deadline")
}

func TestRequestApproval_Cancellation(t *testing.T) {
	channel := &fakeChannel{callID: "CA555"}
	svc, store := newTestService(channel, voiceConfig())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result, err := svc.RequestApproval(ctx, approval.RequestApprovalRequest{
		Summary: "Buy 3 stocks",
	})
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Equal(t, entity.DecisionRejected, result.Decision)
	assert.Less(t, time.Since(start), 200*time.Millisecond, "cancellation must stop polling promptly")

	// a late callback can still be stored for observability
	stored, err := store.Put(context.Background(), "CA555", entity.SpeechOutcome{CallID: "CA555"})
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestRequestApproval_EmptySummary(t *testing.T) {
	svc, _ := newTestService(&fakeChannel{}, voiceConfig())

	_, err := svc.RequestApproval(context.Background(), approval.RequestApprovalRequest{
		Summary: "   ",
	})
	assert.ErrorIs(t, err, approval.ErrEmptySummary)
}

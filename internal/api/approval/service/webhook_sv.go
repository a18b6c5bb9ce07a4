package approvalService

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"ProjectAdvisor/internal/api/approval"
	"ProjectAdvisor/internal/entity"
	contextPkg "ProjectAdvisor/pkg/context"
	"ProjectAdvisor/pkg/twiml"
)

// HandleGatherCallback records the spoken response for a call and returns
// the voice markup acknowledgment the provider speaks before hanging up.
// Duplicate deliveries keep the first stored outcome.
func (s *approvalService) HandleGatherCallback(ctx context.Context, req approval.GatherCallbackRequest) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(req.CallSid) == "" {
		return "", approval.ErrMissingCallSid
	}

	decision := s.classifier.Classify(req.SpeechResult)

	outcome := entity.SpeechOutcome{
		CallID:     req.CallSid,
		Transcript: req.SpeechResult,
		Confidence: req.Confidence,
		Decision:   decision,
		ReceivedAt: time.Now(),
	}

	stored, err := s.store.Put(ctx, req.CallSid, outcome)
	if err != nil {
		// the caller is the telephony provider; ack anyway and rely on
		// the reconciler's timeout to fail closed
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"call_id":    req.CallSid,
			"error":      err.Error(),
		}).Error("Failed to store gathered speech outcome")
	} else if !stored {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"call_id":    req.CallSid,
		}).Warn("Duplicate gather callback ignored, keeping first outcome")
	} else {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"call_id":    req.CallSid,
			"decision":   decision,
			"transcript": req.SpeechResult,
		}).Info("Gathered speech outcome stored")
	}

	return AckMarkup(decision)
}

// AckMarkup builds the spoken acknowledgment for a classified decision.
func AckMarkup(decision entity.Decision) (string, error) {
	phrase := "Your response was unclear. The recommendations will be rejected. Goodbye."
	switch decision {
	case entity.DecisionApproved:
		phrase = "Thank you. The recommendations have been approved. Goodbye."
	case entity.DecisionRejected:
		phrase = "Understood. The recommendations have been rejected. Goodbye."
	}

	return twiml.New().
		Say(phrase, "alice").
		Hangup().
		Render()
}

// GetCallResult exposes a stored outcome to a remote reconciler polling
// over HTTP. Reading does not consume the entry.
func (s *approvalService) GetCallResult(ctx context.Context, callID string) (*approval.CallResultResponse, error) {
	outcome, found, err := s.store.Get(ctx, callID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"call_id":    callID,
			"error":      err.Error(),
		}).Error("Pending store read failed")
		return nil, approval.ErrStoreUnavailable
	}
	if !found {
		return nil, approval.ErrCallResultNotFound
	}

	return &approval.CallResultResponse{
		CallID:     outcome.CallID,
		Transcript: outcome.Transcript,
		Confidence: outcome.Confidence,
		Decision:   outcome.Decision,
		ReceivedAt: outcome.ReceivedAt,
	}, nil
}

func (s *approvalService) ServeAudioFile(ctx context.Context, filename string) ([]byte, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.SanitizeAudioFilename(filename); err != nil {
		return nil, approval.ErrInvalidAudioName
	}

	data, err := s.audioStore.Load(filename)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"filename":   filename,
			"error":      err.Error(),
		}).Warn("Requested audio file not found")
		return nil, approval.ErrAudioFileNotFound
	}

	return data, nil
}

func (s *approvalService) GetApprovalHistory(ctx context.Context, page, limit int) (*approval.ApprovalHistoryResponse, error) {
	if s.repo == nil {
		return &approval.ApprovalHistoryResponse{Records: []entity.ApprovalRecord{}, Total: 0}, nil
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	records, total, err := client.Approvals.GetRecentApprovals(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &approval.ApprovalHistoryResponse{
		Records: records,
		Total:   total,
	}, nil
}

package approvalService

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"ProjectAdvisor/internal/api/approval"
	"ProjectAdvisor/internal/entity"
	contextPkg "ProjectAdvisor/pkg/context"
)

// RequestApproval runs one approval cycle to a terminal result. Every
// failure path resolves to a rejection with a method tag recording what
// happened; the error return is reserved for invalid input.
func (s *approvalService) RequestApproval(ctx context.Context, req approval.RequestApprovalRequest) (*approval.ApprovalResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		return nil, approval.ErrEmptySummary
	}

	recipient := strings.TrimSpace(req.Recipient)
	if recipient != "" {
		// a caller-supplied recipient is input, not configuration
		if err := s.utils.ValidatePhoneNumber(recipient); err != nil {
			return nil, approval.ErrInvalidRecipient
		}
	} else {
		recipient = s.config.Recipient
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	request := entity.ApprovalRequest{
		ID:        id,
		Summary:   summary,
		Recipient: recipient,
		CreatedAt: time.Now(),
	}

	var result entity.ApprovalResult
	switch {
	case s.config.MockMode || !s.config.VoiceConfigured || s.channel == nil:
		result = s.mockDecision(ctx, request)
	case s.config.CallbackBaseURL == "" || s.utils.ValidatePhoneNumber(recipient) != nil:
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"approval_id": request.ID,
		}).Warn("Approval auto-rejected, voice configuration incomplete")
		result = entity.ApprovalResult{
			RequestID: request.ID,
			Approved:  false,
			Decision:  entity.DecisionRejected,
			Method:    entity.MethodAutoRejectedConf,
			Notes:     "voice configuration incomplete",
			DecidedAt: time.Now(),
		}
	default:
		result = s.reconcileVoice(ctx, request)
	}

	s.persistResult(ctx, request, result)

	resp := approval.ApprovalResponse{
		RequestID:  result.RequestID,
		CallID:     result.CallID,
		Approved:   result.Approved,
		Decision:   result.Decision,
		Method:     result.Method,
		Transcript: result.Transcript,
		Notes:      result.Notes,
		DecidedAt:  result.DecidedAt,
	}

	return &resp, nil
}

// mockDecision resolves without touching the telephony provider, after a
// short fixed delay that mimics a human picking up.
func (s *approvalService) mockDecision(ctx context.Context, request entity.ApprovalRequest) entity.ApprovalResult {
	requestID := contextPkg.GetRequestID(ctx)

	if s.config.MockDelay > 0 {
		timer := time.NewTimer(s.config.MockDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	decision := entity.DecisionRejected
	approved := false
	if s.config.MockApprove {
		decision = entity.DecisionApproved
		approved = true
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"approval_id": request.ID,
		"decision":    decision,
	}).Info("Approval resolved by mock decision source")

	return entity.ApprovalResult{
		RequestID: request.ID,
		Approved:  approved,
		Decision:  decision,
		Method:    entity.MethodMock,
		DecidedAt: time.Now(),
	}
}

// reconcileVoice places the call and polls the pending store until the
// gathered outcome appears or the deadline elapses.
func (s *approvalService) reconcileVoice(ctx context.Context, request entity.ApprovalRequest) entity.ApprovalResult {
	requestID := contextPkg.GetRequestID(ctx)

	message := composeCallMessage(request.Summary, s.config.ManagerName)

	callID, err := s.channel.PlaceCall(ctx, message, request.Recipient, s.config.CallbackBaseURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"approval_id": request.ID,
			"error":       err.Error(),
		}).Error("Approval call placement failed")
		return entity.ApprovalResult{
			RequestID: request.ID,
			Approved:  false,
			Decision:  entity.DecisionRejected,
			Method:    entity.MethodVoiceCallFailed,
			Notes:     err.Error(),
			DecidedAt: time.Now(),
		}
	}

	session := entity.CallSession{
		CallID:  callID,
		Request: request,
		Status:  entity.CallStatusInitiated,
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"approval_id": request.ID,
		"call_id":     session.CallID,
	}).Info("Approval call placed, waiting for spoken response")

	deadline := time.NewTimer(s.config.PollDeadline)
	defer deadline.Stop()
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	session.Status = entity.CallStatusInProgress

	for {
		select {
		case <-ctx.Done():
			session.Status = entity.CallStatusTimedOut
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"call_id":    session.CallID,
			}).Warn("Approval polling cancelled")
			return entity.ApprovalResult{
				RequestID: request.ID,
				CallID:    session.CallID,
				Approved:  false,
				Decision:  entity.DecisionRejected,
				Method:    entity.MethodVoiceTimeout,
				Notes:     "request cancelled",
				DecidedAt: time.Now(),
			}

		case <-deadline.C:
			session.Status = entity.CallStatusTimedOut
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"call_id":    session.CallID,
			}).Warn("No spoken response before deadline, rejecting")
			return entity.ApprovalResult{
				RequestID: request.ID,
				CallID:    session.CallID,
				Approved:  false,
				Decision:  entity.DecisionRejected,
				Method:    entity.MethodVoiceTimeout,
				DecidedAt: time.Now(),
			}

		case <-ticker.C:
			outcome, found, err := s.store.Get(ctx, session.CallID)
			if err != nil {
				// transient store errors wait out the interval like a miss
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"call_id":    session.CallID,
					"error":      err.Error(),
				}).Debug("Pending store read failed, retrying")
				continue
			}
			if !found {
				continue
			}

			if err := s.store.Remove(ctx, session.CallID); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"call_id":    session.CallID,
					"error":      err.Error(),
				}).Warn("Failed to remove consumed outcome")
			}

			session.Status = entity.CallStatusCompleted
			return s.translateOutcome(ctx, request, session, outcome)
		}
	}
}

func (s *approvalService) translateOutcome(
	ctx context.Context,
	request entity.ApprovalRequest,
	session entity.CallSession,
	outcome entity.SpeechOutcome,
) entity.ApprovalResult {
	requestID := contextPkg.GetRequestID(ctx)

	result := entity.ApprovalResult{
		RequestID:  request.ID,
		CallID:     session.CallID,
		Decision:   entity.DecisionRejected,
		Method:     entity.MethodVoiceCompleted,
		Transcript: outcome.Transcript,
		DecidedAt:  time.Now(),
	}

	switch outcome.Decision {
	case entity.DecisionApproved:
		result.Approved = true
		result.Decision = entity.DecisionApproved
	case entity.DecisionRejected:
	default:
		result.Notes = "unclear"
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"call_id":    session.CallID,
		"decision":   result.Decision,
		"transcript": outcome.Transcript,
	}).Info("Approval reconciled from spoken response")

	return result
}

// persistResult best-effort writes the audit record; a missing database or
// write failure never changes the decision.
func (s *approvalService) persistResult(ctx context.Context, request entity.ApprovalRequest, result entity.ApprovalResult) {
	if s.repo == nil {
		return
	}

	requestID := contextPkg.GetRequestID(ctx)

	client, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to open repository client for approval audit")
		return
	}

	recordID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		recordID = fmt.Sprintf("%s-audit", request.ID)
	}

	record := entity.ApprovalRecord{
		ID:         recordID,
		RequestID:  result.RequestID,
		CallID:     result.CallID,
		Decision:   string(result.Decision),
		Method:     string(result.Method),
		Transcript: result.Transcript,
		Notes:      result.Notes,
		Recipient:  request.Recipient,
		CreatedAt:  result.DecidedAt,
	}

	if err := client.Approvals.CreateApprovalRecord(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"approval_id": request.ID,
			"error":       err.Error(),
		}).Warn("Failed to persist approval audit record")
	}
}

func composeCallMessage(summary, managerName string) string {
	greeting := "Hello."
	if managerName != "" {
		greeting = fmt.Sprintf("Hello %s.", managerName)
	}
	return fmt.Sprintf(
		"%s This is your investment advisor calling for approval. %s. Please say YES to approve or NO to reject.",
		greeting,
		summary,
	)
}

package entity

import "time"

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
	DecisionUnclear  Decision = "unclear"
)

type ApprovalMethod string

const (
	MethodMock             ApprovalMethod = "mock"
	MethodVoiceCompleted   ApprovalMethod = "voice_completed"
	MethodVoiceTimeout     ApprovalMethod = "voice_timeout"
	MethodVoiceCallFailed  ApprovalMethod = "voice_call_failed"
	MethodAutoRejectedConf ApprovalMethod = "auto_rejected_missing_config"
)

type CallStatus string

const (
	CallStatusInitiated  CallStatus = "initiated"
	CallStatusInProgress CallStatus = "in_progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusTimedOut   CallStatus = "timed_out"
	CallStatusFailed     CallStatus = "failed"
)

func IsValidDecision(decision string) bool {
	switch Decision(decision) {
	case DecisionApproved, DecisionRejected, DecisionUnclear:
		return true
	default:
		return false
	}
}

// ApprovalRequest is what the caller wants approved: the recommendations
// summary spoken on the call plus the number to dial.
type ApprovalRequest struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Recipient string    `json:"recipient"`
	CreatedAt time.Time `json:"created_at"`
}

// CallSession tracks one outbound call from placement to its terminal
// status. The call ID is the join key with the gather webhook.
type CallSession struct {
	CallID  string          `json:"call_id"`
	Request ApprovalRequest `json:"request"`
	Status  CallStatus      `json:"status"`
}

// SpeechOutcome is the gathered speech result posted by the telephony
// provider once the callee responds (or the call completes without speech).
type SpeechOutcome struct {
	CallID     string    `json:"call_id"`
	Transcript string    `json:"transcript"`
	Confidence float64   `json:"confidence"`
	Decision   Decision  `json:"decision"`
	ReceivedAt time.Time `json:"received_at"`
}

// ApprovalResult is the reconciled terminal decision for a request.
// Approved is true only for an explicit approval; every failure mode
// resolves to a rejection with the method recording how it happened.
type ApprovalResult struct {
	RequestID  string         `json:"request_id"`
	CallID     string         `json:"call_id,omitempty"`
	Approved   bool           `json:"approved"`
	Decision   Decision       `json:"decision"`
	Method     ApprovalMethod `json:"method"`
	Transcript string         `json:"transcript,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	DecidedAt  time.Time      `json:"decided_at"`
}

// ApprovalRecord is the audit row persisted for each resolved approval.
type ApprovalRecord struct {
	ID         string    `json:"id" db:"id"`
	RequestID  string    `json:"request_id" db:"request_id"`
	CallID     string    `json:"call_id,omitempty" db:"call_id"`
	Decision   string    `json:"decision" db:"decision"`
	Method     string    `json:"method" db:"method"`
	Transcript string    `json:"transcript,omitempty" db:"transcript"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
	Recipient  string    `json:"recipient,omitempty" db:"recipient"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

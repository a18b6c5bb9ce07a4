package approval

import (
	"ProjectAdvisor/internal/entity"
	"time"
)

type RequestApprovalRequest struct {
	Summary   string `json:"summary" validate:"required"`
	Recipient string `json:"recipient,omitempty"`
}

// GatherCallbackRequest carries the form fields the telephony provider posts
// to the gather webhook after collecting speech on the call.
type GatherCallbackRequest struct {
	CallSid      string  `form:"CallSid" validate:"required"`
	SpeechResult string  `form:"SpeechResult"`
	Confidence   float64 `form:"Confidence"`
}

type ApprovalResponse struct {
	RequestID  string                `json:"request_id"`
	CallID     string                `json:"call_id,omitempty"`
	Approved   bool                  `json:"approved"`
	Decision   entity.Decision       `json:"decision"`
	Method     entity.ApprovalMethod `json:"method"`
	Transcript string                `json:"transcript,omitempty"`
	Notes      string                `json:"notes,omitempty"`
	DecidedAt  time.Time             `json:"decided_at"`
}

type CallResultResponse struct {
	CallID     string          `json:"call_id"`
	Transcript string          `json:"transcript"`
	Confidence float64         `json:"confidence"`
	Decision   entity.Decision `json:"decision"`
	ReceivedAt time.Time       `json:"received_at"`
}

type ApprovalHistoryResponse struct {
	Records []entity.ApprovalRecord `json:"records"`
	Total   int                     `json:"total"`
}

package approval

import "ProjectAdvisor/pkg/response"

var (
	ErrCallResultNotFound = response.NewError(404, "call result not found")
	ErrAudioFileNotFound  = response.NewError(404, "audio file not found")
	ErrInvalidAudioName   = response.NewError(400, "invalid audio filename")
	ErrInvalidRecipient   = response.NewError(400, "invalid recipient phone number")
	ErrEmptySummary       = response.NewError(400, "approval summary is required")
	ErrMissingCallSid     = response.NewError(400, "CallSid is required")
	ErrStoreUnavailable   = response.NewError(500, "pending approval store unavailable")
)

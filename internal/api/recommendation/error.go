package recommendation

import "ProjectAdvisor/pkg/response"

var (
	ErrNoRecommendations  = response.NewError(502, "no recommendations could be generated")
	ErrInvalidSymbol      = response.NewError(400, "invalid stock symbol")
	ErrEmptyApprovalBatch = response.NewError(400, "no recommendations to approve")
)

package recommendationService

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"ProjectAdvisor/internal/api/approval"
	"ProjectAdvisor/internal/api/recommendation"
	"ProjectAdvisor/internal/entity"
	contextPkg "ProjectAdvisor/pkg/context"
)

// GenerateRecommendations runs the full pipeline: news analysis, LLM
// recommendations with a deterministic fallback, quote enrichment and the
// optional voice approval round.
func (s *recommendationSvc) GenerateRecommendations(ctx context.Context, req recommendation.GenerateRecommendationsRequest) (*recommendation.RecommendationResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	analysis, err := s.AnalyzeNews(ctx, recommendation.NewsAnalysisRequest{
		Query:       req.Query,
		Symbols:     req.Symbols,
		MaxArticles: req.MaxArticles,
	})
	if err != nil {
		return nil, err
	}

	maxPicks := req.MaxPicks
	if maxPicks <= 0 || maxPicks > s.config.MaxPicks {
		maxPicks = s.config.MaxPicks
	}

	picks := s.recommendPicks(ctx, *analysis, req.Symbols, maxPicks)
	if len(picks) == 0 {
		return nil, recommendation.ErrNoRecommendations
	}

	s.enrichWithQuotes(ctx, picks)

	batchID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	resp := recommendation.RecommendationResponse{
		BatchID:         batchID,
		Recommendations: picks,
		NewsAnalysis:    *analysis,
		Disclaimer:      s.config.Disclaimer,
		GeneratedAt:     time.Now(),
	}

	if req.RequestApproval {
		approvalResp, err := s.approvalService.RequestApproval(ctx, approval.RequestApprovalRequest{
			Summary:   composeApprovalSummary(picks),
			Recipient: req.Recipient,
		})
		if err != nil {
			return nil, err
		}
		resp.Approval = approvalResp
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"batch_id":   batchID,
		"picks":      len(picks),
		"approval":   req.RequestApproval,
	}).Info("Recommendation batch generated")

	return &resp, nil
}

// ApproveRecommendations runs only the approval round for picks the caller
// already holds.
func (s *recommendationSvc) ApproveRecommendations(ctx context.Context, req recommendation.ApproveRecommendationsRequest) (*recommendation.RecommendationResponse, error) {
	if len(req.Recommendations) == 0 {
		return nil, recommendation.ErrEmptyApprovalBatch
	}

	for _, pick := range req.Recommendations {
		if !entity.IsValidAction(string(pick.Action)) {
			return nil, recommendation.ErrInvalidSymbol
		}
	}

	batchID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	approvalResp, err := s.approvalService.RequestApproval(ctx, approval.RequestApprovalRequest{
		Summary:   composeApprovalSummary(req.Recommendations),
		Recipient: req.Recipient,
	})
	if err != nil {
		return nil, err
	}

	return &recommendation.RecommendationResponse{
		BatchID:         batchID,
		Recommendations: req.Recommendations,
		Approval:        approvalResp,
		Disclaimer:      s.config.Disclaimer,
		GeneratedAt:     time.Now(),
	}, nil
}

// recommendPicks asks the LLM first and falls back to a deterministic
// sentiment rule when it fails, so the pipeline always produces picks.
func (s *recommendationSvc) recommendPicks(
	ctx context.Context,
	analysis recommendation.NewsAnalysisResponse,
	symbols []string,
	maxPicks int,
) []entity.StockRecommendation {
	requestID := contextPkg.GetRequestID(ctx)

	llmPicks, err := s.recommender.GenerateRecommendations(ctx, marketContext(analysis), maxPicks)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("LLM recommender failed, using sentiment fallback")
		return s.fallbackPicks(analysis, symbols, maxPicks)
	}

	picks := make([]entity.StockRecommendation, 0, len(llmPicks))
	for _, p := range llmPicks {
		if p.Symbol == "" || !entity.IsValidAction(p.Action) {
			continue
		}
		picks = append(picks, entity.StockRecommendation{
			Symbol:           p.Symbol,
			Action:           entity.RecommendationAction(p.Action),
			Confidence:       p.Confidence,
			Reasoning:        p.Reasoning,
			TargetAllocation: p.TargetAllocation,
		})
	}

	if len(picks) == 0 {
		return s.fallbackPicks(analysis, symbols, maxPicks)
	}

	return picks
}

// fallbackPicks maps overall sentiment onto the requested (or default)
// symbols: clearly positive buys, clearly negative sells, otherwise holds.
func (s *recommendationSvc) fallbackPicks(
	analysis recommendation.NewsAnalysisResponse,
	symbols []string,
	maxPicks int,
) []entity.StockRecommendation {
	if len(symbols) == 0 {
		symbols = s.config.DefaultSymbols
	}
	if len(symbols) > maxPicks {
		symbols = symbols[:maxPicks]
	}

	action := entity.ActionHold
	reason := "mixed market sentiment, holding position"
	switch {
	case analysis.OverallSentiment.Compound >= 0.05:
		action = entity.ActionBuy
		reason = fmt.Sprintf("positive market sentiment (%.2f)", analysis.OverallSentiment.Compound)
	case analysis.OverallSentiment.Compound <= -0.05:
		action = entity.ActionSell
		reason = fmt.Sprintf("negative market sentiment (%.2f)", analysis.OverallSentiment.Compound)
	}

	picks := make([]entity.StockRecommendation, 0, len(symbols))
	for _, symbol := range symbols {
		picks = append(picks, entity.StockRecommendation{
			Symbol:     strings.ToUpper(strings.TrimSpace(symbol)),
			Action:     action,
			Confidence: 0.5,
			Reasoning:  reason,
		})
	}

	return picks
}

// enrichWithQuotes attaches current prices where the quote feed answers;
// a failed quote never blocks the recommendation.
func (s *recommendationSvc) enrichWithQuotes(ctx context.Context, picks []entity.StockRecommendation) {
	for i := range picks {
		quote, err := s.news.FetchQuote(ctx, picks[i].Symbol)
		if err != nil || quote == nil {
			mockQuote, mockErr := s.mockNews.FetchQuote(ctx, picks[i].Symbol)
			if mockErr != nil || mockQuote == nil {
				continue
			}
			quote = mockQuote
		}

		previousClose := quote.CurrentPrice - quote.Change
		picks[i].Quote = &entity.StockQuote{
			Symbol:        quote.Symbol,
			Price:         quote.CurrentPrice,
			PreviousClose: previousClose,
			ChangePercent: quote.ChangePercent,
		}
	}
}

func marketContext(analysis recommendation.NewsAnalysisResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall market sentiment: %s (compound %.2f).\n",
		analysis.OverallSentiment.Label, analysis.OverallSentiment.Compound)
	if analysis.MockNews {
		b.WriteString("Note: news feed unavailable, articles below are generated samples.\n")
	}
	b.WriteString("Recent headlines:\n")
	for _, a := range analysis.Articles {
		fmt.Fprintf(&b, "- [%s, sentiment %.2f] %s", a.Article.Source, a.Sentiment.Compound, a.Article.Title)
		if a.Article.Snippet != "" {
			fmt.Fprintf(&b, ": %s", a.Article.Snippet)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func composeApprovalSummary(picks []entity.StockRecommendation) string {
	parts := make([]string, 0, len(picks))
	for _, pick := range picks {
		parts = append(parts, fmt.Sprintf("%s %s", pick.Action, pick.Symbol))
	}

	return fmt.Sprintf("I recommend the following %d actions: %s",
		len(picks), strings.Join(parts, ", "))
}

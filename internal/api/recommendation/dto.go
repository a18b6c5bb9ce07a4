package recommendation

import (
	"time"

	"ProjectAdvisor/internal/api/approval"
	"ProjectAdvisor/internal/entity"
)

type NewsAnalysisRequest struct {
	Query       string   `json:"query,omitempty"`
	Symbols     []string `json:"symbols,omitempty" validate:"omitempty,max=20,dive,min=1,max=10"`
	MaxArticles int      `json:"max_articles,omitempty" validate:"omitempty,min=1,max=50"`
}

type NewsAnalysisResponse struct {
	Articles         []entity.ScoredArticle `json:"articles"`
	OverallSentiment entity.SentimentScore  `json:"overall_sentiment"`
	MarketSummary    string                 `json:"market_summary"`
	MockNews         bool                   `json:"mock_news"`
	AnalyzedAt       time.Time              `json:"analyzed_at"`
}

type GenerateRecommendationsRequest struct {
	Query           string   `json:"query,omitempty"`
	Symbols         []string `json:"symbols,omitempty" validate:"omitempty,max=20,dive,min=1,max=10"`
	MaxArticles     int      `json:"max_articles,omitempty" validate:"omitempty,min=1,max=50"`
	MaxPicks        int      `json:"max_picks,omitempty" validate:"omitempty,min=1,max=10"`
	RequestApproval bool     `json:"request_approval,omitempty"`
	Recipient       string   `json:"recipient,omitempty"`
}

type RecommendationResponse struct {
	BatchID         string                       `json:"batch_id"`
	Recommendations []entity.StockRecommendation `json:"recommendations"`
	NewsAnalysis    NewsAnalysisResponse         `json:"news_analysis"`
	Approval        *approval.ApprovalResponse   `json:"approval,omitempty"`
	Disclaimer      string                       `json:"disclaimer"`
	GeneratedAt     time.Time                    `json:"generated_at"`
}

type ApproveRecommendationsRequest struct {
	Recommendations []entity.StockRecommendation `json:"recommendations" validate:"required,min=1,max=10"`
	Recipient       string                       `json:"recipient,omitempty"`
}

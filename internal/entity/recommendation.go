package entity

import "time"

type RecommendationAction string

const (
	ActionBuy  RecommendationAction = "buy"
	ActionSell RecommendationAction = "sell"
	ActionHold RecommendationAction = "hold"
)

func IsValidAction(action string) bool {
	switch RecommendationAction(action) {
	case ActionBuy, ActionSell, ActionHold:
		return true
	default:
		return false
	}
}

type NewsArticle struct {
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Mock        bool      `json:"mock"`
}

type SentimentScore struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Label    string  `json:"label"`
}

type ScoredArticle struct {
	Article   NewsArticle    `json:"article"`
	Sentiment SentimentScore `json:"sentiment"`
}

type StockQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	ChangePercent float64 `json:"change_percent"`
}

type StockRecommendation struct {
	Symbol           string               `json:"symbol"`
	Action           RecommendationAction `json:"action"`
	Confidence       float64              `json:"confidence"`
	Reasoning        string               `json:"reasoning"`
	TargetAllocation float64              `json:"target_allocation"`
	Quote            *StockQuote          `json:"quote,omitempty"`
}

// RecommendationBatch ties a set of picks to the news evidence they came
// from; the batch summary is what gets read out on the approval call.
type RecommendationBatch struct {
	ID              string                `json:"id"`
	Recommendations []StockRecommendation `json:"recommendations"`
	Articles        []ScoredArticle       `json:"articles"`
	MarketSummary   string                `json:"market_summary"`
	MockNews        bool                  `json:"mock_news"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// Package marketdata fetches financial news and quotes from the public
// Yahoo Finance endpoints. The provider owns relevance and freshness
// semantics; this package only does transport and shaping.
package marketdata

import (
	"context"
	"time"
)

type Article struct {
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Source        string    `json:"source"`
	PublishedDate time.Time `json:"published_date,omitempty"`
	Snippet       string    `json:"snippet,omitempty"`
}

type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
}

type IClient interface {
	FetchNews(ctx context.Context, query string, maxArticles int) ([]Article, error)
	FetchQuote(ctx context.Context, symbol string) (*Quote, error)
}

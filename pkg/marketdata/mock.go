package marketdata

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

var mockHeadlines = []string{
	"Tech Giants Report Strong Q4 Earnings, Stocks Surge",
	"Federal Reserve Signals Potential Rate Cut Next Quarter",
	"Renewable Energy Sector Sees Record Investment Growth",
	"Cryptocurrency Market Stabilizes After Recent Volatility",
	"Healthcare Stocks Rally on Breakthrough Drug Approvals",
	"Supply Chain Disruptions Impact Manufacturing Sector",
	"Banking Sector Outperforms Market Expectations",
	"AI and Machine Learning Stocks Gain Momentum",
	"Energy Prices Fluctuate Amid Global Economic Uncertainty",
	"Consumer Spending Data Shows Resilient Economic Growth",
	"International Trade Tensions Affect Market Sentiment",
	"Emerging Markets Show Signs of Recovery",
	"Technology IPOs Generate Strong Investor Interest",
	"Pharmaceutical Companies Lead Healthcare Innovation",
	"Green Energy Transition Creates Investment Opportunities",
}

var mockSnippets = []string{
	"Market analysts report optimistic outlook following strong quarterly results.",
	"Economic indicators suggest continued growth despite global uncertainties.",
	"Industry experts predict significant developments in the coming months.",
	"Investors respond positively to recent corporate announcements.",
	"Regulatory changes may impact sector performance in the near term.",
	"Consumer confidence remains strong amid economic headwinds.",
	"Company fundamentals support current market valuations.",
	"Earnings reports exceed analyst expectations across multiple sectors.",
}

var mockSources = []string{
	"Reuters", "Bloomberg", "Financial Times", "Wall Street Journal", "MarketWatch", "CNBC",
}

var mockStocks = map[string]struct {
	name       string
	basePrice  float64
	volatility float64
}{
	"AAPL":  {"Apple Inc.", 175.0, 0.02},
	"GOOGL": {"Alphabet Inc.", 2850.0, 0.025},
	"MSFT":  {"Microsoft Corporation", 420.0, 0.018},
	"TSLA":  {"Tesla Inc.", 245.0, 0.04},
	"NVDA":  {"NVIDIA Corporation", 890.0, 0.035},
	"AMZN":  {"Amazon.com Inc.", 3200.0, 0.022},
	"META":  {"Meta Platforms Inc.", 485.0, 0.03},
	"NFLX":  {"Netflix Inc.", 650.0, 0.028},
	"AMD":   {"Advanced Micro Devices", 180.0, 0.032},
	"CRM":   {"Salesforce Inc.", 290.0, 0.025},
}

// mockClient generates deterministic-shaped fake data for environments
// without outbound network access. Articles are clearly attributable to the
// mock source so degraded analyses are distinguishable downstream.
type mockClient struct {
	rng *rand.Rand
}

func NewMockClient() IClient {
	return &mockClient{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *mockClient) FetchNews(_ context.Context, _ string, maxArticles int) ([]Article, error) {
	if maxArticles <= 0 || maxArticles > len(mockHeadlines) {
		maxArticles = len(mockHeadlines)
	}

	now := time.Now().UTC()
	articles := make([]Article, 0, maxArticles)
	for i := 0; i < maxArticles; i++ {
		articles = append(articles, Article{
			Title:         mockHeadlines[i],
			URL:           "https://example.com/news/" + strings.ToLower(strings.ReplaceAll(mockHeadlines[i][:12], " ", "-")),
			Source:        mockSources[c.rng.Intn(len(mockSources))],
			PublishedDate: now.Add(-time.Duration(c.rng.Intn(168)) * time.Hour),
			Snippet:       mockSnippets[c.rng.Intn(len(mockSnippets))],
		})
	}

	return articles, nil
}

func (c *mockClient) FetchQuote(_ context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	info, ok := mockStocks[symbol]
	if !ok {
		info.name = symbol + " Corporation"
		info.basePrice = 50 + c.rng.Float64()*450
		info.volatility = 0.015 + c.rng.Float64()*0.025
	}

	changePercent := (c.rng.Float64()*2 - 1) * info.volatility * 100
	change := info.basePrice * changePercent / 100

	return &Quote{
		Symbol:        symbol,
		Name:          info.name,
		CurrentPrice:  info.basePrice + change,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        int64(1_000_000 + c.rng.Intn(49_000_000)),
		MarketCap:     (info.basePrice + change) * float64(1+c.rng.Intn(9)) * 1e9,
	}, nil
}

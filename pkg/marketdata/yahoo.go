package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	searchEndpoint = "https://query1.finance.yahoo.com/v1/finance/search"
	chartEndpoint  = "https://query1.finance.yahoo.com/v8/finance/chart"
)

type yahooClient struct {
	httpClient *http.Client
}

func NewYahooClient() IClient {
	return &yahooClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Link                string `json:"link"`
		Publisher           string `json:"publisher"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol              string  `json:"symbol"`
				LongName            string  `json:"longName"`
				ShortName           string  `json:"shortName"`
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				ChartPreviousClose  float64 `json:"chartPreviousClose"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *yahooClient) FetchNews(ctx context.Context, query string, maxArticles int) ([]Article, error) {
	if maxArticles <= 0 {
		maxArticles = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("newsCount", fmt.Sprintf("%d", maxArticles))
	params.Set("quotesCount", "0")

	body, err := c.get(ctx, searchEndpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	seen := make(map[string]bool)
	var articles []Article
	for _, item := range parsed.News {
		if item.Title == "" || seen[item.Title] {
			continue
		}
		seen[item.Title] = true

		article := Article{
			Title:  item.Title,
			URL:    item.Link,
			Source: item.Publisher,
		}
		if article.Source == "" {
			article.Source = "Yahoo Finance"
		}
		if item.ProviderPublishTime > 0 {
			article.PublishedDate = time.Unix(item.ProviderPublishTime, 0).UTC()
		}

		articles = append(articles, article)
		if len(articles) >= maxArticles {
			break
		}
	}

	return articles, nil
}

func (c *yahooClient) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/%s?range=2d&interval=1d", chartEndpoint, url.PathEscape(symbol)))
	if err != nil {
		return nil, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}

	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("quote lookup failed: %s", parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	meta := parsed.Chart.Result[0].Meta
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	change := meta.RegularMarketPrice - meta.ChartPreviousClose
	changePercent := 0.0
	if meta.ChartPreviousClose != 0 {
		changePercent = change / meta.ChartPreviousClose * 100
	}

	return &Quote{
		Symbol:        symbol,
		Name:          name,
		CurrentPrice:  meta.RegularMarketPrice,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        meta.RegularMarketVolume,
	}, nil
}

func (c *yahooClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; AdvisorBot/1.0)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data API error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

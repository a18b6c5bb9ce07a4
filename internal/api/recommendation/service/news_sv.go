package recommendationService

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"ProjectAdvisor/internal/api/recommendation"
	"ProjectAdvisor/internal/entity"
	contextPkg "ProjectAdvisor/pkg/context"
	"ProjectAdvisor/pkg/marketdata"
	"ProjectAdvisor/pkg/sentiment"
)

// AnalyzeNews fetches market news, scores each article and aggregates an
// overall sentiment. When the feed fails or returns nothing, generated mock
// articles are substituted and the response is labeled as degraded.
func (s *recommendationSvc) AnalyzeNews(ctx context.Context, req recommendation.NewsAnalysisRequest) (*recommendation.NewsAnalysisResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	maxArticles := req.MaxArticles
	if maxArticles <= 0 || maxArticles > s.config.MaxArticles {
		maxArticles = s.config.MaxArticles
	}

	query := s.buildNewsQuery(req.Query, req.Symbols)

	articles, mockUsed := s.fetchArticles(ctx, query, maxArticles)

	scored := make([]entity.ScoredArticle, 0, len(articles))
	var compoundSum, posSum, negSum, neuSum float64
	for _, article := range articles {
		score := s.scorer.Score(article.Title + ". " + article.Snippet)
		scored = append(scored, entity.ScoredArticle{
			Article: entity.NewsArticle{
				Title:       article.Title,
				Snippet:     article.Snippet,
				Source:      article.Source,
				URL:         article.URL,
				PublishedAt: article.PublishedDate,
				Mock:        mockUsed,
			},
			Sentiment: toSentimentScore(score),
		})
		compoundSum += score.Compound
		posSum += score.Positive
		negSum += score.Negative
		neuSum += score.Neutral
	}

	overall := entity.SentimentScore{}
	if len(scored) > 0 {
		n := float64(len(scored))
		overall = entity.SentimentScore{
			Compound: compoundSum / n,
			Positive: posSum / n,
			Negative: negSum / n,
			Neutral:  neuSum / n,
		}
		overall.Label = sentiment.Interpretation(overall.Compound)
	}

	summary := s.marketSummary(ctx, scored, overall, mockUsed)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"articles":   len(scored),
		"mock_news":  mockUsed,
		"sentiment":  overall.Label,
	}).Info("News analysis completed")

	return &recommendation.NewsAnalysisResponse{
		Articles:         scored,
		OverallSentiment: overall,
		MarketSummary:    summary,
		MockNews:         mockUsed,
		AnalyzedAt:       time.Now(),
	}, nil
}

func (s *recommendationSvc) buildNewsQuery(query string, symbols []string) string {
	query = strings.TrimSpace(query)
	if query != "" {
		return query
	}

	if len(symbols) == 0 {
		symbols = s.config.DefaultSymbols
	}
	return strings.Join(symbols, " ") + " stock market news"
}

// fetchArticles tries the live feed first. Any error or an empty result
// switches to generated mock articles; the second return reports which
// source the articles came from.
func (s *recommendationSvc) fetchArticles(ctx context.Context, query string, maxArticles int) ([]marketdata.Article, bool) {
	requestID := contextPkg.GetRequestID(ctx)

	articles, err := s.news.FetchNews(ctx, query, maxArticles)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"query":      query,
			"error":      err.Error(),
		}).Warn("News feed failed, using mock articles")
	} else if len(articles) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"query":      query,
		}).Warn("News feed returned nothing, using mock articles")
	} else {
		return articles, false
	}

	mockArticles, mockErr := s.mockNews.FetchNews(ctx, query, maxArticles)
	if mockErr != nil {
		return nil, true
	}

	return mockArticles, true
}

func (s *recommendationSvc) marketSummary(
	ctx context.Context,
	scored []entity.ScoredArticle,
	overall entity.SentimentScore,
	mockUsed bool,
) string {
	if len(scored) == 0 {
		return "No market news available."
	}

	if s.summarizer != nil {
		headlines := make([]string, 0, len(scored))
		for _, a := range scored {
			headlines = append(headlines, a.Article.Title)
		}

		summary, err := s.summarizer.SummarizeMarket(ctx, headlines)
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}

		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
		}).Debug("Market summarizer unavailable, using formatted summary")
	}

	source := "market news"
	if mockUsed {
		source = "generated sample news"
	}

	return fmt.Sprintf(
		"Analyzed %d articles from %s. Overall market sentiment is %s (compound score %.2f).",
		len(scored), source, overall.Label, overall.Compound,
	)
}

func toSentimentScore(score sentiment.Score) entity.SentimentScore {
	return entity.SentimentScore{
		Compound: score.Compound,
		Positive: score.Positive,
		Negative: score.Negative,
		Neutral:  score.Neutral,
		Label:    sentiment.Interpretation(score.Compound),
	}
}

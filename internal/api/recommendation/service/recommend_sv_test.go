package recommendationService

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectAdvisor/internal/api/approval"
	"ProjectAdvisor/internal/api/recommendation"
	"ProjectAdvisor/internal/entity"
	"ProjectAdvisor/pkg/marketdata"
	"ProjectAdvisor/pkg/openai"
	"ProjectAdvisor/pkg/sentiment"
	"ProjectAdvisor/pkg/utils"
)

type fakeMarket struct {
	articles []marketdata.Article
	newsErr  error
	quote    *marketdata.Quote
	quoteErr error
}

func (f *fakeMarket) FetchNews(_ context.Context, _ string, _ int) ([]marketdata.Article, error) {
	return f.articles, f.newsErr
}

func (f *fakeMarket) FetchQuote(_ context.Context, symbol string) (*marketdata.Quote, error) {
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	if f.quote == nil {
		return nil, errors.New("no quote")
	}
	q := *f.quote
	q.Symbol = symbol
	return &q, nil
}

type fakeRecommender struct {
	picks []openai.Recommendation
	err   error
}

func (f *fakeRecommender) GenerateRecommendations(_ context.Context, _ string, _ int) ([]openai.Recommendation, error) {
	return f.picks, f.err
}

type fakeApproval struct {
	response *approval.ApprovalResponse
	called   bool
	summary  string
}

func (f *fakeApproval) RequestApproval(_ context.Context, req approval.RequestApprovalRequest) (*approval.ApprovalResponse, error) {
	f.called = true
	f.summary = req.Summary
	return f.response, nil
}

func (f *fakeApproval) HandleGatherCallback(_ context.Context, _ approval.GatherCallbackRequest) (string, error) {
	return "", nil
}

func (f *fakeApproval) GetCallResult(_ context.Context, _ string) (*approval.CallResultResponse, error) {
	return nil, approval.ErrCallResultNotFound
}

func (f *fakeApproval) ServeAudioFile(_ context.Context, _ string) ([]byte, error) {
	return nil, approval.ErrAudioFileNotFound
}

func (f *fakeApproval) GetApprovalHistory(_ context.Context, _, _ int) (*approval.ApprovalHistoryResponse, error) {
	return &approval.ApprovalHistoryResponse{}, nil
}

func positiveArticles() []marketdata.Article {
	return []marketdata.Article{
		{Title: "Tech stocks rally on strong earnings growth", Source: "Wire", Snippet: "Record profits boost the outlook"},
		{Title: "Markets surge as optimism improves", Source: "Daily", Snippet: "Investors gain confidence"},
	}
}

func newPipeline(live, mock *fakeMarket, rec *fakeRecommender, appr *fakeApproval) IRecommendationService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(
		logger,
		live,
		mock,
		sentiment.NewScorer(),
		rec,
		nil,
		appr,
		utils.New(),
		Config{},
	)
}

func TestAnalyzeNews_LiveFeed(t *testing.T) {
	live := &fakeMarket{articles: positiveArticles()}
	mock := &fakeMarket{articles: []marketdata.Article{{Title: "mock headline"}}}
	svc := newPipeline(live, mock, &fakeRecommender{}, &fakeApproval{})

	result, err := svc.AnalyzeNews(context.Background(), recommendation.NewsAnalysisRequest{})
	require.NoError(t, err)

	assert.False(t, result.MockNews)
	require.Len(t, result.Articles, 2)
	assert.False(t, result.Articles[0].Article.Mock)
	assert.Greater(t, result.OverallSentiment.Compound, 0.0)
	assert.NotEmpty(t, result.MarketSummary)
}

func TestAnalyzeNews_FallsBackToMock(t *testing.T) {
	live := &fakeMarket{newsErr: errors.New("feed down")}
	mock := &fakeMarket{articles: []marketdata.Article{
		{Title: "Generated sample market update", Source: "Mock Wire"},
	}}
	svc := newPipeline(live, mock, &fakeRecommender{}, &fakeApproval{})

	result, err := svc.AnalyzeNews(context.Background(), recommendation.NewsAnalysisRequest{})
	require.NoError(t, err)

	assert.True(t, result.MockNews, "degraded news must be labeled")
	require.Len(t, result.Articles, 1)
	assert.True(t, result.Articles[0].Article.Mock)
	assert.Contains(t, result.MarketSummary, "generated sample news")
}

func TestAnalyzeNews_EmptyFeedFallsBackToMock(t *testing.T) {
	live := &fakeMarket{articles: nil}
	mock := &fakeMarket{articles: []marketdata.Article{{Title: "Sample"}}}
	svc := newPipeline(live, mock, &fakeRecommender{}, &fakeApproval{})

	result, err := svc.AnalyzeNews(context.Background(), recommendation.NewsAnalysisRequest{})
	require.NoError(t, err)
	assert.True(t, result.MockNews)
}

func TestGenerateRecommendations_LLMPicks(t *testing.T) {
	live := &fakeMarket{
		articles: positiveArticles(),
		quote:    &marketdata.Quote{CurrentPrice: 100, Change: 2, ChangePercent: 2},
	}
	rec := &fakeRecommender{picks: []openai.Recommendation{
		{Symbol: "AAPL", Action: "buy", Confidence: 0.8, Reasoning: "strong earnings"},
		{Symbol: "", Action: "buy"},
		{Symbol: "MSFT", Action: "teleport"},
	}}
	svc := newPipeline(live, &fakeMarket{}, rec, &fakeApproval{})

	result, err := svc.GenerateRecommendations(context.Background(), recommendation.GenerateRecommendationsRequest{})
	require.NoError(t, err)

	// invalid symbol and invalid action are dropped
	require.Len(t, result.Recommendations, 1)
	pick := result.Recommendations[0]
	assert.Equal(t, "AAPL", pick.Symbol)
	assert.Equal(t, entity.ActionBuy, pick.Action)
	require.NotNil(t, pick.Quote)
	assert.InDelta(t, 100.0, pick.Quote.Price, 1e-9)
	assert.InDelta(t, 98.0, pick.Quote.PreviousClose, 1e-9)
	assert.NotEmpty(t, result.BatchID)
	assert.NotEmpty(t, result.Disclaimer)
	assert.Nil(t, result.Approval)
}

func TestGenerateRecommendations_FallbackOnLLMFailure(t *testing.T) {
	live := &fakeMarket{articles: positiveArticles()}
	rec := &fakeRecommender{err: errors.New("llm down")}
	svc := newPipeline(live, &fakeMarket{}, rec, &fakeApproval{})

	result, err := svc.GenerateRecommendations(context.Background(), recommendation.GenerateRecommendationsRequest{
		Symbols: []string{"nvda"},
	})
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "NVDA", result.Recommendations[0].Symbol)
	// positive headlines drive a buy in the deterministic fallback
	assert.Equal(t, entity.ActionBuy, result.Recommendations[0].Action)
}

func TestGenerateRecommendations_WithApproval(t *testing.T) {
	live := &fakeMarket{articles: positiveArticles()}
	rec := &fakeRecommender{picks: []openai.Recommendation{
		{Symbol: "AAPL", Action: "buy", Confidence: 0.8},
	}}
	appr := &fakeApproval{response: &approval.ApprovalResponse{
		Approved: true,
		Decision: entity.DecisionApproved,
		Method:   entity.MethodMock,
	}}
	svc := newPipeline(live, &fakeMarket{}, rec, appr)

	result, err := svc.GenerateRecommendations(context.Background(), recommendation.GenerateRecommendationsRequest{
		RequestApproval: true,
	})
	require.NoError(t, err)

	assert.True(t, appr.called)
	assert.Contains(t, appr.summary, "buy AAPL")
	require.NotNil(t, result.Approval)
	assert.True(t, result.Approval.Approved)
}

func TestApproveRecommendations(t *testing.T) {
	appr := &fakeApproval{response: &approval.ApprovalResponse{
		Approved: false,
		Decision: entity.DecisionRejected,
		Method:   entity.MethodVoiceTimeout,
	}}
	svc := newPipeline(&fakeMarket{}, &fakeMarket{}, &fakeRecommender{}, appr)

	result, err := svc.ApproveRecommendations(context.Background(), recommendation.ApproveRecommendationsRequest{
		Recommendations: []entity.StockRecommendation{
			{Symbol: "AAPL", Action: entity.ActionSell},
		},
	})
	require.NoError(t, err)

	assert.True(t, appr.called)
	assert.Contains(t, appr.summary, "sell AAPL")
	require.NotNil(t, result.Approval)
	assert.Equal(t, entity.MethodVoiceTimeout, result.Approval.Method)
}

func TestApproveRecommendations_EmptyBatch(t *testing.T) {
	svc := newPipeline(&fakeMarket{}, &fakeMarket{}, &fakeRecommender{}, &fakeApproval{})

	_, err := svc.ApproveRecommendations(context.Background(), recommendation.ApproveRecommendationsRequest{})
	assert.ErrorIs(t, err, recommendation.ErrEmptyApprovalBatch)
}

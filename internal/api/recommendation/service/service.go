package recommendationService

import (
	"context"

	"github.com/sirupsen/logrus"

	approvalService "ProjectAdvisor/internal/api/approval/service"
	"ProjectAdvisor/internal/api/recommendation"
	"ProjectAdvisor/pkg/gemini"
	"ProjectAdvisor/pkg/marketdata"
	"ProjectAdvisor/pkg/openai"
	"ProjectAdvisor/pkg/sentiment"
	"ProjectAdvisor/pkg/utils"
)

type IRecommendationService interface {
	AnalyzeNews(ctx context.Context, req recommendation.NewsAnalysisRequest) (*recommendation.NewsAnalysisResponse, error)
	GenerateRecommendations(ctx context.Context, req recommendation.GenerateRecommendationsRequest) (*recommendation.RecommendationResponse, error)
	ApproveRecommendations(ctx context.Context, req recommendation.ApproveRecommendationsRequest) (*recommendation.RecommendationResponse, error)
}

// Config bounds the pipeline. DefaultSymbols seed the news query and the
// fallback recommender when the caller names no symbols.
type Config struct {
	DefaultSymbols []string
	MaxArticles    int
	MaxPicks       int
	Disclaimer     string
}

func (c Config) withDefaults() Config {
	if len(c.DefaultSymbols) == 0 {
		c.DefaultSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA"}
	}
	if c.MaxArticles <= 0 {
		c.MaxArticles = 10
	}
	if c.MaxPicks <= 0 {
		c.MaxPicks = 3
	}
	if c.Disclaimer == "" {
		c.Disclaimer = "These recommendations are generated automatically and are not financial advice. Always do your own research before investing."
	}
	return c
}

type recommendationSvc struct {
	log             *logrus.Logger
	news            marketdata.IClient
	mockNews        marketdata.IClient
	scorer          sentiment.IScorer
	recommender     openai.IRecommender
	summarizer      gemini.IGemini
	approvalService approvalService.IApprovalService
	utils           utils.IUtils
	config          Config
}

// New wires the pipeline. summarizer may be nil; the market summary then
// falls back to a locally formatted sentence.
func New(
	log *logrus.Logger,
	news marketdata.IClient,
	mockNews marketdata.IClient,
	scorer sentiment.IScorer,
	recommender openai.IRecommender,
	summarizer gemini.IGemini,
	as approvalService.IApprovalService,
	utils utils.IUtils,
	config Config,
) IRecommendationService {
	return &recommendationSvc{
		log:             log,
		news:            news,
		mockNews:        mockNews,
		scorer:          scorer,
		recommender:     recommender,
		summarizer:      summarizer,
		approvalService: as,
		utils:           utils,
		config:          config.withDefaults(),
	}
}

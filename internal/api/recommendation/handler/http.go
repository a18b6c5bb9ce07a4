package recommendationHandler

import (
	recommendationService "ProjectAdvisor/internal/api/recommendation/service"
	"ProjectAdvisor/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RecommendationHandler struct {
	log                   *logrus.Logger
	validator             *validator.Validate
	middleware            middleware.Middleware
	recommendationService recommendationService.IRecommendationService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	rs recommendationService.IRecommendationService,
) *RecommendationHandler {
	return &RecommendationHandler{
		log:                   log,
		validator:             validate,
		middleware:            middleware,
		recommendationService: rs,
	}
}

func (h *RecommendationHandler) Start(srv fiber.Router) {
	recommendations := srv.Group("/recommendations")

	recommendations.Use(h.middleware.NewRateLimiter)

	recommendations.Post("", h.GenerateRecommendations)
	recommendations.Post("/news", h.AnalyzeNews)
	recommendations.Post("/approve", h.ApproveRecommendations)
}

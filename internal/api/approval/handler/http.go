package approvalHandler

import (
	approvalService "ProjectAdvisor/internal/api/approval/service"
	"ProjectAdvisor/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ApprovalHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	approvalService approvalService.IApprovalService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as approvalService.IApprovalService,
) *ApprovalHandler {
	return &ApprovalHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		approvalService: as,
	}
}

func (h *ApprovalHandler) Start(srv fiber.Router) {
	// webhook routes carry no auth; the telephony provider posts here
	webhooks := srv.Group("/webhooks/approval")
	webhooks.Post("/gather", h.GatherCallback)
	webhooks.Get("/result/:call_id", h.GetCallResult)
	webhooks.Get("/audio/:filename", h.ServeAudioFile)

	approvals := srv.Group("/approvals")
	approvals.Get("/history", h.GetApprovalHistory)
}

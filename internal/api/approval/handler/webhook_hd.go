package approvalHandler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"ProjectAdvisor/internal/api/approval"
	approvalService "ProjectAdvisor/internal/api/approval/service"
	"ProjectAdvisor/internal/entity"
	contextPkg "ProjectAdvisor/pkg/context"
	"ProjectAdvisor/pkg/handlerUtil"
	"ProjectAdvisor/pkg/log"
)

const twimlContentType = "application/xml"

// GatherCallback receives the provider's speech-result POST. It always
// answers with voice markup, even on bad input, so the call ends with a
// spoken phrase instead of provider-side error audio.
func (h *ApprovalHandler) GatherCallback(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing gather callback")

	confidence, _ := strconv.ParseFloat(ctx.FormValue("Confidence"), 64)
	req := approval.GatherCallbackRequest{
		CallSid:      ctx.FormValue("CallSid"),
		SpeechResult: ctx.FormValue("SpeechResult"),
		Confidence:   confidence,
	}

	markup, err := h.approvalService.HandleGatherCallback(c, req)
	if err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Gather callback rejected")

		fallback, renderErr := approvalService.AckMarkup(entity.DecisionRejected)
		if renderErr != nil {
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}
		ctx.Set(fiber.HeaderContentType, twimlContentType)
		return ctx.Status(fiber.StatusOK).SendString(fallback)
	}

	ctx.Set(fiber.HeaderContentType, twimlContentType)
	return ctx.Status(fiber.StatusOK).SendString(markup)
}

func (h *ApprovalHandler) GetCallResult(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	callID := ctx.Params("call_id")
	if callID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("call_id is required"), ctx.Path())
	}

	result, err := h.approvalService.GetCallResult(c, callID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_call_result")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ApprovalHandler) ServeAudioFile(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	filename := ctx.Params("filename")
	if filename == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("filename is required"), ctx.Path())
	}

	data, err := h.approvalService.ServeAudioFile(c, filename)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "serve_audio_file")
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	return ctx.Status(fiber.StatusOK).Send(data)
}

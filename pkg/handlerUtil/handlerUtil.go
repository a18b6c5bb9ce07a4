package handlerUtil

import (
	"ProjectAdvisor/internal/api/approval"
	"ProjectAdvisor/internal/api/recommendation"
	"ProjectAdvisor/pkg/log"
	"ProjectAdvisor/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Approval domain errors
	if errors.Is(err, approval.ErrCallResultNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Call result not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Call result not found",
			"code":    "CALL_RESULT_NOT_FOUND",
		})
	}

	if errors.Is(err, approval.ErrAudioFileNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Audio file not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Audio file not found",
			"code":    "AUDIO_NOT_FOUND",
		})
	}

	if errors.Is(err, approval.ErrInvalidAudioName) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid audio filename")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid audio filename",
			"code":    "INVALID_AUDIO_NAME",
		})
	}

	if errors.Is(err, approval.ErrEmptySummary) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Approval summary missing")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Approval summary is required",
			"code":    "EMPTY_SUMMARY",
		})
	}

	if errors.Is(err, approval.ErrMissingCallSid) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("CallSid missing from callback")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "CallSid is required",
			"code":    "MISSING_CALL_SID",
		})
	}

	if errors.Is(err, approval.ErrInvalidRecipient) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid recipient phone number")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid recipient phone number",
			"code":    "INVALID_RECIPIENT",
		})
	}

	if errors.Is(err, approval.ErrStoreUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Pending approval store unavailable")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Pending approval store unavailable",
			"code":    "STORE_UNAVAILABLE",
		})
	}

	// Recommendation domain errors
	if errors.Is(err, recommendation.ErrNoRecommendations) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No recommendations generated")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "No recommendations could be generated",
			"code":    "NO_RECOMMENDATIONS",
		})
	}

	if errors.Is(err, recommendation.ErrEmptyApprovalBatch) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Empty approval batch")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No recommendations to approve",
			"code":    "EMPTY_APPROVAL_BATCH",
		})
	}

	if errors.Is(err, recommendation.ErrInvalidSymbol) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid recommendation payload")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid recommendation payload",
			"code":    "INVALID_RECOMMENDATION",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}

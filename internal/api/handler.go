package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/zaljabir/alleviate-api/internal/alleviate"
	"github.com/zaljabir/alleviate-api/pkg/utils"
)

// PhoneUpdateService defines the automation operation used by the handler.
type PhoneUpdateService interface {
	UpdatePhoneNumber(ctx context.Context, creds alleviate.Credentials, phoneNumber string) (*alleviate.UpdateResult, error)
}

// AlleviateHandler handles HTTP API requests for target-platform operations.
type AlleviateHandler struct {
	logger  *zap.Logger
	service PhoneUpdateService
}

// NewAlleviateHandler creates a new AlleviateHandler.
func NewAlleviateHandler(logger *zap.Logger, service PhoneUpdateService) *AlleviateHandler {
	return &AlleviateHandler{
		logger:  logger,
		service: service,
	}
}

// UpdatePhoneHandler handles phone-number update requests. Validation and
// authentication failures are answered before any browser session opens;
// login and save rejections are 200-level business outcomes; only automation
// faults surface as 500.
func (h *AlleviateHandler) UpdatePhoneHandler(c *fiber.Ctx) error {
	creds, ok := credentialsFromCtx(c)
	if !ok {
		// The basicauth middleware guards this route; reaching here without
		// credentials means the route was wired without it.
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "missing or malformed Basic authorization header",
			Example: authUsageExample,
		})
	}

	var req PhoneUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   err.Error(),
			Example: PhoneUpdateRequest{PhoneNumber: "+15551234567"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   err.Error(),
			Example: PhoneUpdateRequest{PhoneNumber: "+15551234567"},
		})
	}

	result, err := h.service.UpdatePhoneNumber(c.Context(), creds, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, alleviate.ErrSessionsSaturated) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
				Error: "too many concurrent automation sessions, retry later",
			})
		}
		h.logger.Error("alleviate.update_phone.failed",
			zap.String("user", utils.MaskUsername(creds.Username)),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Automation failed",
			Message: err.Error(),
		})
	}

	if result.LoginFailed {
		return c.Status(fiber.StatusOK).JSON(UpdateResponse{
			Success: false,
			Message: result.Message,
		})
	}

	resp := UpdateResponse{
		Success: result.Success,
		Message: result.Message,
		Data: &UpdateData{
			PhoneNumber: result.PhoneNumber,
			Status:      result.Status,
		},
	}
	if !result.UpdatedAt.IsZero() {
		resp.UpdatedAt = result.UpdatedAt.Format(time.RFC3339)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

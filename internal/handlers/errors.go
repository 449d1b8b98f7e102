package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

// serviceError maps a service error onto a response. Denials carry no
// detail; rows of other identities already surface as not found.
func serviceError(c *fiber.Ctx, err error, action string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: verr.Error(), Field: verr.Field,
		})
	case errors.Is(err, policy.ErrDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Not permitted",
		})
	case errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrEvidenceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Storage temporarily unavailable, please retry", Retryable: true,
		})
	}

	slog.Error("request failed", "action", action, "path", c.Path(), "error", err.Error(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to " + action,
	})
}

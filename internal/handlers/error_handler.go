package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber fallback for errors no handler turned into a
// response. Only client errors keep their message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID))
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

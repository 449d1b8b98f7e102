package middleware

import (
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies the bearer token and stores it under the "user"
// local. Tokens whose sub is not a user id are rejected here so handlers
// always see a usable principal.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			if _, err := policy.UserID(c); err != nil {
				return rejectToken(c)
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return rejectToken(c)
		},
	})
}

func rejectToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}

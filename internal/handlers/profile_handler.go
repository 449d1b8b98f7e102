package handlers

import (
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.profileService.Get(userID)
	if err != nil {
		return serviceError(c, err, "fetch profile")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.profileService.Update(userID, &req)
	if err != nil {
		return serviceError(c, err, "update profile")
	}
	return c.JSON(profile)
}

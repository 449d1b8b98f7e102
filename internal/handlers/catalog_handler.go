package handlers

import (
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	registry *catalog.Registry
}

func NewCatalogHandler(registry *catalog.Registry) *CatalogHandler {
	return &CatalogHandler{registry: registry}
}

// ListViolationTypes is public; the catalog is readable without a session.
func (h *CatalogHandler) ListViolationTypes(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.JSON(fiber.Map{"violation_types": h.registry.All()})
}

func (h *CatalogHandler) GetViolationType(c *fiber.Ctx) error {
	kind, ok := h.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Violation type not found",
		})
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.JSON(kind)
}

package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *catalog.Registry
}

func NewHealthHandler(registry *catalog.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status, dbStatus := "ok", "ok"
	if err := database.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		DB:           dbStatus,
		CatalogCount: h.registry.Len(),
	})
}

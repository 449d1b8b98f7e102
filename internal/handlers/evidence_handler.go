package handlers

import (
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type EvidenceHandler struct {
	evidenceService *services.EvidenceService
}

func NewEvidenceHandler(evidenceService *services.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{evidenceService: evidenceService}
}

func (h *EvidenceHandler) Upload(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Multipart field 'file' is required")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "Could not read uploaded file")
	}
	defer f.Close()

	resp, err := h.evidenceService.Upload(c.UserContext(), userID, fh.Header.Get(fiber.HeaderContentType), fh.Size, f)
	if err != nil {
		return serviceError(c, err, "upload evidence")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *EvidenceHandler) Download(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	key := c.Params("owner") + "/" + c.Params("name")
	rc, info, err := h.evidenceService.Open(c.UserContext(), userID, key)
	if err != nil {
		return serviceError(c, err, "fetch evidence")
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	size := -1
	if info.Size > 0 {
		size = int(info.Size)
	}
	// fasthttp closes rc once the body has been written.
	return c.SendStream(rc, size)
}

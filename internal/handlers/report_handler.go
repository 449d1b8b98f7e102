package handlers

import (
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService  *services.ReportService
	summaryService *services.SummaryService
}

func NewReportHandler(reportService *services.ReportService, summaryService *services.SummaryService) *ReportHandler {
	return &ReportHandler{reportService: reportService, summaryService: summaryService}
}

func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Submit(userID, &req)
	if err != nil {
		return serviceError(c, err, "submit report")
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	reports, total, err := h.reportService.List(userID, status, limit, offset)
	if err != nil {
		return serviceError(c, err, "fetch reports")
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
	})
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report id")
	}

	report, err := h.reportService.Get(userID, id)
	if err != nil {
		return serviceError(c, err, "fetch report")
	}
	return c.JSON(report)
}

func (h *ReportHandler) Update(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report id")
	}

	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Update(userID, id, &req)
	if err != nil {
		return serviceError(c, err, "update report")
	}
	return c.JSON(report)
}

func (h *ReportHandler) CheckDuplicate(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.DuplicateCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	dup, err := h.reportService.CheckDuplicate(userID, &req)
	if err != nil {
		return serviceError(c, err, "check duplicates")
	}
	return c.JSON(dto.DuplicateCheckResponse{Duplicate: dup})
}

func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	userID, err := policy.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	summary, err := h.summaryService.Get(userID)
	if err != nil {
		return serviceError(c, err, "compute summary")
	}
	return c.JSON(summary)
}

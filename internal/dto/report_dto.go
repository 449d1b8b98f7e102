package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitReportRequest carries what a reporter may set. Status is never read
// from the client.
type SubmitReportRequest struct {
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	ViolationTypeID string     `json:"violation_type_id"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	LocationLabel   string     `json:"location_label"`
	ImageURL        string     `json:"image_url"`
	PlateNumber     string     `json:"plate_number"`
	SubmittedAt     *time.Time `json:"submitted_at"`
}

// UpdateReportRequest is a partial update of a pending report. The violation
// type is fixed at submission because the reward is derived from it.
type UpdateReportRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	LocationLabel *string  `json:"location_label"`
	ImageURL      *string  `json:"image_url"`
	PlateNumber   *string  `json:"plate_number"`
	Status        *string  `json:"status"`
}

type DuplicateCheckRequest struct {
	PlateNumber     string     `json:"plate_number"`
	ViolationTypeID string     `json:"violation_type_id"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	At              *time.Time `json:"at"`
}

type DuplicateCheckResponse struct {
	Duplicate bool `json:"duplicate"`
}

type ReportSummary struct {
	Total           int64   `json:"total_reports"`
	Pending         int64   `json:"pending_reports"`
	Approved        int64   `json:"approved_reports"`
	Rejected        int64   `json:"rejected_reports"`
	TotalEarned     float64 `json:"total_earned"`
	PendingEarnings float64 `json:"pending_earnings"`
	SuccessRate     float64 `json:"success_rate"`
}

type EvidenceResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

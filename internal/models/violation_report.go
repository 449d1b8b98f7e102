package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ViolationReport is a submitted violation. FineAmount and RewardAmount are
// captured at submission and not recomputed when the catalog changes.
// Status, RejectionReason, ReviewedAt, PaidOut and PaidOutAt are written by
// the moderation process only.
type ViolationReport struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ViolationTypeID string         `gorm:"size:32;not null" json:"violation_type_id"`
	Latitude        *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude       *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	LocationLabel   string         `gorm:"size:255" json:"location_label,omitempty"`
	ImageURL        string         `gorm:"type:text" json:"image_url,omitempty"`
	PlateNumber     string         `gorm:"size:20;index" json:"plate_number,omitempty"`
	Status          string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RejectionReason string         `gorm:"size:500" json:"rejection_reason,omitempty"`
	FineAmount      int            `gorm:"not null" json:"fine_amount"`
	RewardAmount    float64        `gorm:"type:decimal(10,2);not null" json:"reward_amount"`
	PaidOut         bool           `gorm:"default:false" json:"paid_out"`
	PaidOutAt       *time.Time     `json:"paid_out_at,omitempty"`
	SubmittedAt     time.Time      `gorm:"not null;index:idx_violation_reports_submitted_at,sort:desc" json:"submitted_at"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Profile         Profile        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ViolationType   *ViolationKind `gorm:"foreignKey:ViolationTypeID;-:migration" json:"violation_type,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PayoutBankTransfer = "bank_transfer"
	PayoutPayPal       = "paypal"
	PayoutVenmo        = "venmo"
	PayoutZelle        = "zelle"
)

// Profile is the per-principal identity row. It shares its id with the User,
// is created together with it and cascades away when the User is deleted.
type Profile struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email                string    `gorm:"size:255" json:"email"`
	FullName             string    `gorm:"size:255" json:"full_name"`
	BankLast4            string    `gorm:"size:4" json:"bank_last4"`
	PayoutMethod         string    `gorm:"size:20;default:'bank_transfer'" json:"payout_method"`
	NotifyReportApproved bool      `gorm:"default:true" json:"notify_report_approved"`
	NotifyReportRejected bool      `gorm:"default:true" json:"notify_report_rejected"`
	NotifyPayoutSent     bool      `gorm:"default:true" json:"notify_payout_sent"`
	NotifyWeeklyDigest   bool      `gorm:"default:true" json:"notify_weekly_digest"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func ValidPayoutMethod(m string) bool {
	switch m {
	case PayoutBankTransfer, PayoutPayPal, PayoutVenmo, PayoutZelle:
		return true
	}
	return false
}

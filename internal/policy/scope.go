package policy

import (
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visible returns a GORM scope limiting a query to rows the requester may
// select. It mirrors the select rules in the rule table.
func Visible(res Resource, requester uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch res {
		case ResourceViolationKind:
			return db
		case ResourceProfile:
			return db.Where("id = ?", requester)
		case ResourceReport:
			return db.Where("user_id = ?", requester)
		default:
			return db.Where("1 = 0")
		}
	}
}

// Writable returns a GORM scope limiting an update to rows the requester may
// modify.
func Writable(res Resource, requester uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch res {
		case ResourceProfile:
			return db.Where("id = ?", requester)
		case ResourceReport:
			return db.Where("user_id = ? AND status = ?", requester, models.StatusPending)
		default:
			return db.Where("1 = 0")
		}
	}
}

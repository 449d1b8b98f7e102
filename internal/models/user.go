package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the authentication record. Its ID is the principal id carried in the
// JWT sub claim and shared with the Profile row.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Profile   *Profile  `gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

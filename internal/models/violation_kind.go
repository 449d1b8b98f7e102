package models

// ViolationKind is a catalog entry. Rows are seeded at startup and never
// rewritten afterwards.
type ViolationKind struct {
	ID          string `gorm:"primaryKey;size:32" json:"id"`
	Label       string `gorm:"not null;size:100" json:"label"`
	Fine        int    `gorm:"not null" json:"fine"`
	Icon        string `gorm:"size:16" json:"icon"`
	Description string `gorm:"size:500" json:"description"`
}

func (ViolationKind) TableName() string {
	return "violation_types"
}

package catalog

import (
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var Defaults = []models.ViolationKind{
	{ID: "bike", Label: "Bike Lane", Fine: 175, Icon: "🚲", Description: "Vehicle parked or standing in a bike lane"},
	{ID: "hydrant", Label: "Fire Hydrant", Fine: 115, Icon: "🚒", Description: "Parked within 15 feet of a fire hydrant"},
	{ID: "crosswalk", Label: "Crosswalk", Fine: 115, Icon: "🚸", Description: "Vehicle blocking a marked crosswalk"},
	{ID: "double", Label: "Double Parking", Fine: 115, Icon: "🚗", Description: "Double parked in a travel lane"},
	{ID: "bus", Label: "Bus Stop", Fine: 115, Icon: "🚌", Description: "Parked or standing in a bus stop"},
	{ID: "sidewalk", Label: "Sidewalk", Fine: 165, Icon: "🚶", Description: "Vehicle parked on the sidewalk"},
	{ID: "disabled", Label: "Accessible Spot", Fine: 180, Icon: "♿", Description: "Parked in an accessible space without a permit"},
}

// Seed inserts catalog entries that do not exist yet. Existing rows are left
// untouched so a fine can't be changed by redeploying.
func Seed(db *gorm.DB, kinds []models.ViolationKind) error {
	if len(kinds) == 0 {
		return nil
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&kinds)
	if result.Error != nil {
		return fmt.Errorf("failed to seed catalog: %w", result.Error)
	}
	slog.Info("violation catalog seeded", "inserted", result.RowsAffected, "entries", len(kinds))
	return nil
}

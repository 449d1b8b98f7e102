package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup deletes persisted logs older than retention once a day until
// done is closed.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PurgeBefore(db, time.Now().UTC().Add(-retention))
			case <-done:
				return
			}
		}
	}()
}

func PurgeBefore(db *gorm.DB, cutoff time.Time) int64 {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "action", "log_cleanup", "error", result.Error.Error())
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected
}

package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	auth      *AuthService
	reports   *ReportService
	summaries *SummaryService
	profiles  *ProfileService
	clock     time.Time
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessExpiry:    15 * time.Minute,
		JWTRefreshExpiry:   time.Hour,
		DefaultFine:        115,
		RewardRate:         0.10,
		DuplicateWindow:    2 * time.Hour,
		DuplicateTolerance: 0.001,
		SummaryCacheSize:   100,
		EvidenceMaxBytes:   1024,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenTest(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, catalog.Seed(db, catalog.Defaults))

	cfg := testConfig()
	env := &testEnv{db: db, cfg: cfg, clock: baseTime}
	env.summaries = NewSummaryService(db, cfg)
	env.reports = NewReportService(db, cfg, env.summaries)
	env.reports.now = func() time.Time { return env.clock }
	env.auth = NewAuthService(db, cfg)
	env.profiles = NewProfileService(db)
	return env
}

func (e *testEnv) newUser(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := e.auth.Register(&dto.RegisterRequest{
		Email:    uuid.NewString() + "@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp.User.ID
}

// review plays the moderation process, which writes status directly.
func (e *testEnv) review(t *testing.T, id uuid.UUID, status string) {
	t.Helper()
	reviewedAt := e.clock
	require.NoError(t, e.db.Model(&models.ViolationReport{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"reviewed_at": reviewedAt,
	}).Error)
}

func ptr[T any](v T) *T {
	return &v
}

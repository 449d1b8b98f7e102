package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryWithNoReports(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t)

	summary, err := env.summaries.Get(user)
	require.NoError(t, err)
	assert.Equal(t, dto.ReportSummary{}, *summary)
	assert.Equal(t, 0.0, summary.SuccessRate)
}

func TestSummaryMixedStatuses(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t)
	other := env.newUser(t)

	approved, err := env.reports.Submit(user, &dto.SubmitReportRequest{ViolationTypeID: "bike"})
	require.NoError(t, err)
	_, err = env.reports.Submit(user, &dto.SubmitReportRequest{ViolationTypeID: "hydrant"})
	require.NoError(t, err)
	rejected, err := env.reports.Submit(user, &dto.SubmitReportRequest{ViolationTypeID: "crosswalk"})
	require.NoError(t, err)
	_, err = env.reports.Submit(other, &dto.SubmitReportRequest{ViolationTypeID: "disabled"})
	require.NoError(t, err)

	env.review(t, approved.ID, models.StatusApproved)
	env.review(t, rejected.ID, models.StatusRejected)
	require.NoError(t, env.db.Model(&models.ViolationReport{}).Where("id = ?", rejected.ID).Update("reward_amount", 0).Error)

	summary, err := env.summaries.Get(user)
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.Total)
	assert.EqualValues(t, 1, summary.Approved)
	assert.EqualValues(t, 1, summary.Pending)
	assert.EqualValues(t, 1, summary.Rejected)
	assert.InDelta(t, 17.50, summary.TotalEarned, 1e-9)
	assert.InDelta(t, 11.50, summary.PendingEarnings, 1e-9)
	assert.Equal(t, 33.3, summary.SuccessRate)

	otherSummary, err := env.summaries.Get(other)
	require.NoError(t, err)
	assert.EqualValues(t, 1, otherSummary.Total)
	assert.InDelta(t, 18.0, otherSummary.PendingEarnings, 1e-9)
	assert.Zero(t, otherSummary.TotalEarned)
}

func TestSummaryCacheInvalidatedOnSubmit(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.SummaryCacheTTL = time.Minute
	env.summaries = NewSummaryService(env.db, env.cfg)
	env.reports = NewReportService(env.db, env.cfg, env.summaries)
	env.reports.now = func() time.Time { return env.clock }

	user := env.newUser(t)

	first, err := env.summaries.Get(user)
	require.NoError(t, err)
	assert.Zero(t, first.Total)

	_, err = env.reports.Submit(user, &dto.SubmitReportRequest{ViolationTypeID: "bike"})
	require.NoError(t, err)

	second, err := env.summaries.Get(user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.Total)

	// Writes that bypass the service are served from cache until expiry.
	require.NoError(t, env.db.Model(&models.ViolationReport{}).Where("user_id = ?", user).Update("status", models.StatusApproved).Error)
	cached, err := env.summaries.Get(user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cached.Pending)

	env.summaries.Invalidate(user)
	fresh, err := env.summaries.Get(user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fresh.Approved)
	assert.Equal(t, 100.0, fresh.SuccessRate)
}

package services

import (
	"fmt"
	"math"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"
)

// SummaryService derives the per-identity dashboard aggregate from the
// report ledger. Nothing is stored; with a cache TTL configured, results are
// kept per identity until they expire or the identity writes a report.
type SummaryService struct {
	db    *gorm.DB
	cache *expirable.LRU[uuid.UUID, dto.ReportSummary]
}

func NewSummaryService(db *gorm.DB, cfg *config.Config) *SummaryService {
	s := &SummaryService{db: db}
	if cfg.SummaryCacheTTL > 0 {
		s.cache = expirable.NewLRU[uuid.UUID, dto.ReportSummary](cfg.SummaryCacheSize, nil, cfg.SummaryCacheTTL)
	}
	return s
}

type summaryRow struct {
	Total           int64
	Pending         int64
	Approved        int64
	Rejected        int64
	TotalEarned     float64
	PendingEarnings float64
}

func (s *SummaryService) Get(requester uuid.UUID) (*dto.ReportSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(requester); ok {
			return &cached, nil
		}
	}

	var row summaryRow
	err := s.db.Model(&models.ViolationReport{}).
		Scopes(policy.Visible(policy.ResourceReport, requester)).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS rejected,
			COALESCE(SUM(CASE WHEN status = ? THEN reward_amount ELSE 0 END), 0) AS total_earned,
			COALESCE(SUM(CASE WHEN status = ? THEN reward_amount ELSE 0 END), 0) AS pending_earnings`,
			models.StatusPending, models.StatusApproved, models.StatusRejected,
			models.StatusApproved, models.StatusPending,
		).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	summary := dto.ReportSummary{
		Total:           row.Total,
		Pending:         row.Pending,
		Approved:        row.Approved,
		Rejected:        row.Rejected,
		TotalEarned:     roundTo(row.TotalEarned, 2),
		PendingEarnings: roundTo(row.PendingEarnings, 2),
		SuccessRate:     SuccessRate(row.Approved, row.Total),
	}

	if s.cache != nil {
		s.cache.Add(requester, summary)
	}
	return &summary, nil
}

// Invalidate drops a cached summary after the identity's reports change.
func (s *SummaryService) Invalidate(userID uuid.UUID) {
	if s == nil || s.cache == nil {
		return
	}
	s.cache.Remove(userID)
}

// SuccessRate is approved/total as a percentage with one decimal, 0 when
// there are no reports.
func SuccessRate(approved, total int64) float64 {
	if total == 0 {
		return 0
	}
	return roundTo(float64(approved)/float64(total)*100, 1)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

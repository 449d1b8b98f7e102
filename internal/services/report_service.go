package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxPlateLength    = 20
	maxLocationLength = 255
)

type ReportService struct {
	db        *gorm.DB
	cfg       *config.Config
	summaries *SummaryService
	now       func() time.Time
}

func NewReportService(db *gorm.DB, cfg *config.Config, summaries *SummaryService) *ReportService {
	return &ReportService{
		db:        db,
		cfg:       cfg,
		summaries: summaries,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a new pending report owned by the requester. The fine is read
// from the catalog now and the reward is frozen with it.
//
// Submit does not run CheckDuplicate; clients are expected to call it first,
// so a client that skips the check can still file duplicates.
func (s *ReportService) Submit(requester uuid.UUID, req *dto.SubmitReportRequest) (*models.ViolationReport, error) {
	owner := requester
	if req.UserID != nil {
		owner = *req.UserID
	}
	if err := policy.Authorize(policy.ResourceReport, policy.ActionInsert, requester, policy.Row{OwnerID: owner}); err != nil {
		return nil, err
	}

	kind := strings.TrimSpace(req.ViolationTypeID)
	if kind == "" {
		return nil, invalid("violation_type_id", "is required")
	}
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	label := strings.TrimSpace(req.LocationLabel)
	if len(label) > maxLocationLength {
		return nil, invalid("location_label", "must be at most 255 characters")
	}
	plate := NormalizePlate(req.PlateNumber)
	if len(plate) > maxPlateLength {
		return nil, invalid("plate_number", "must be at most 20 characters")
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if err := s.checkImageURL(owner, imageURL); err != nil {
		return nil, err
	}

	fine, err := s.fineFor(kind)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now()
	if req.SubmittedAt != nil && !req.SubmittedAt.IsZero() {
		submittedAt = req.SubmittedAt.UTC()
	}

	report := models.ViolationReport{
		ID:              uuid.New(),
		UserID:          owner,
		ViolationTypeID: kind,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		LocationLabel:   label,
		ImageURL:        imageURL,
		PlateNumber:     plate,
		Status:          models.StatusPending,
		FineAmount:      fine,
		RewardAmount:    ComputeReward(fine, s.cfg.RewardRate),
		SubmittedAt:     submittedAt,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	s.summaries.Invalidate(owner)

	slog.Info("report submitted",
		"user_id", owner.String(),
		"report_id", report.ID.String(),
		"violation_type", kind,
		"fine", fine,
		"reward", report.RewardAmount,
	)
	return &report, nil
}

func (s *ReportService) fineFor(kind string) (int, error) {
	var k models.ViolationKind
	err := s.db.Scopes(policy.Visible(policy.ResourceViolationKind, uuid.Nil)).
		Where("id = ?", kind).First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Warn("unknown violation type, using default fine", "violation_type", kind, "fine", s.cfg.DefaultFine)
		return s.cfg.DefaultFine, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up violation type: %w", err)
	}
	return k.Fine, nil
}

// List returns the requester's reports, newest first, with catalog metadata.
func (s *ReportService) List(requester uuid.UUID, status string, limit, offset int) ([]models.ViolationReport, int64, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, 0, invalid("status", "must be pending, approved or rejected")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	owned := func() *gorm.DB {
		q := s.db.Model(&models.ViolationReport{}).Scopes(policy.Visible(policy.ResourceReport, requester))
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := owned().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []models.ViolationReport
	if err := owned().Preload("ViolationType").
		Order("submitted_at DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// Get returns one of the requester's reports. Reports owned by anyone else are
// reported as not found.
func (s *ReportService) Get(requester uuid.UUID, id uuid.UUID) (*models.ViolationReport, error) {
	var report models.ViolationReport
	err := s.db.Scopes(policy.Visible(policy.ResourceReport, requester)).
		Preload("ViolationType").
		First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return &report, nil
}

// Update edits a pending report. Once a report has been reviewed it is
// read-only for its owner.
func (s *ReportService) Update(requester uuid.UUID, id uuid.UUID, req *dto.UpdateReportRequest) (*models.ViolationReport, error) {
	report, err := s.Get(requester, id)
	if err != nil {
		return nil, err
	}
	row := policy.Row{OwnerID: report.UserID, Status: report.Status}
	if err := policy.Authorize(policy.ResourceReport, policy.ActionUpdate, requester, row); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, invalid("status", "must be pending, approved or rejected")
		}
		if *req.Status != models.StatusPending {
			return nil, invalid("status", "cannot be changed by the reporter")
		}
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, invalid("latitude", "latitude and longitude must be updated together")
	}
	if req.Latitude != nil {
		if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
			return nil, err
		}
		updates["latitude"] = *req.Latitude
		updates["longitude"] = *req.Longitude
	}
	if req.LocationLabel != nil {
		label := strings.TrimSpace(*req.LocationLabel)
		if len(label) > maxLocationLength {
			return nil, invalid("location_label", "must be at most 255 characters")
		}
		updates["location_label"] = label
	}
	if req.ImageURL != nil {
		imageURL := strings.TrimSpace(*req.ImageURL)
		if err := s.checkImageURL(requester, imageURL); err != nil {
			return nil, err
		}
		updates["image_url"] = imageURL
	}
	if req.PlateNumber != nil {
		plate := NormalizePlate(*req.PlateNumber)
		if len(plate) > maxPlateLength {
			return nil, invalid("plate_number", "must be at most 20 characters")
		}
		updates["plate_number"] = plate
	}

	if len(updates) == 0 {
		return report, nil
	}

	result := s.db.Model(&models.ViolationReport{}).
		Scopes(policy.Writable(policy.ResourceReport, requester)).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update report: %w", result.Error)
	}
	// Reviewed between the read and the write.
	if result.RowsAffected == 0 {
		return nil, policy.ErrDenied
	}
	s.summaries.Invalidate(requester)

	return s.Get(requester, id)
}

// CheckDuplicate reports whether the requester already filed the same plate
// and violation type within the configured window. With coordinates, the
// earlier report must also lie within the tolerance on each axis. The
// tolerance is a flat degree delta, not a distance: it shrinks in metres
// towards the poles and does not wrap at the antimeridian.
func (s *ReportService) CheckDuplicate(requester uuid.UUID, req *dto.DuplicateCheckRequest) (bool, error) {
	plate := NormalizePlate(req.PlateNumber)
	if plate == "" {
		return false, invalid("plate_number", "is required")
	}
	kind := strings.TrimSpace(req.ViolationTypeID)
	if kind == "" {
		return false, invalid("violation_type_id", "is required")
	}

	at := s.now()
	if req.At != nil && !req.At.IsZero() {
		at = req.At.UTC()
	}
	window := s.cfg.DuplicateWindow

	query := s.db.Model(&models.ViolationReport{}).
		Scopes(policy.Visible(policy.ResourceReport, requester)).
		Where("plate_number = ? AND violation_type_id = ?", plate, kind).
		Where("submitted_at > ? AND submitted_at < ?", at.Add(-window), at.Add(window))

	if req.Latitude != nil && req.Longitude != nil {
		tol := s.cfg.DuplicateTolerance
		query = query.
			Where("latitude BETWEEN ? AND ?", *req.Latitude-tol, *req.Latitude+tol).
			Where("longitude BETWEEN ? AND ?", *req.Longitude-tol, *req.Longitude+tol)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check duplicates: %w", err)
	}
	return count > 0, nil
}

// checkImageURL rejects evidence URLs served by this service that point
// outside the owner's key prefix. Other URLs are stored as given.
func (s *ReportService) checkImageURL(owner uuid.UUID, imageURL string) error {
	if imageURL == "" {
		return nil
	}
	for _, base := range []string{evidenceBaseURL(s.cfg), "/api/evidence"} {
		key, ok := strings.CutPrefix(imageURL, base+"/")
		if !ok {
			continue
		}
		if strings.Contains(key, "..") ||
			!policy.Allowed(policy.ResourceEvidence, policy.ActionSelect, owner, policy.Row{Key: key}) {
			return invalid("image_url", "must reference your own evidence")
		}
		return nil
	}
	return nil
}

// NormalizePlate trims and upper-cases a licence plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return invalid("latitude", "latitude and longitude must be provided together")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return invalid("latitude", "must be between -90 and 90")
	}
	if *lng < -180 || *lng > 180 {
		return invalid("longitude", "must be between -180 and 180")
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(requester uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Scopes(policy.Visible(policy.ResourceProfile, requester)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) Update(requester uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	updates := make(map[string]interface{})

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if len(name) > 255 {
			return nil, invalid("full_name", "must be at most 255 characters")
		}
		updates["full_name"] = name
	}
	if req.BankLast4 != nil {
		last4 := strings.TrimSpace(*req.BankLast4)
		if last4 != "" && !isDigits(last4, 4) {
			return nil, invalid("bank_last4", "must be exactly 4 digits")
		}
		updates["bank_last4"] = last4
	}
	if req.PayoutMethod != nil {
		if !models.ValidPayoutMethod(*req.PayoutMethod) {
			return nil, invalid("payout_method", "must be bank_transfer, paypal, venmo or zelle")
		}
		updates["payout_method"] = *req.PayoutMethod
	}
	if req.NotifyReportApproved != nil {
		updates["notify_report_approved"] = *req.NotifyReportApproved
	}
	if req.NotifyReportRejected != nil {
		updates["notify_report_rejected"] = *req.NotifyReportRejected
	}
	if req.NotifyPayoutSent != nil {
		updates["notify_payout_sent"] = *req.NotifyPayoutSent
	}
	if req.NotifyWeeklyDigest != nil {
		updates["notify_weekly_digest"] = *req.NotifyWeeklyDigest
	}

	if len(updates) > 0 {
		result := s.db.Model(&models.Profile{}).
			Scopes(policy.Writable(policy.ResourceProfile, requester)).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrProfileNotFound
		}
	}

	return s.Get(requester)
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

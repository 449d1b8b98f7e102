package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t)

	profile, err := env.profiles.Update(user, &dto.UpdateProfileRequest{
		FullName:           ptr("  Jane Roe "),
		BankLast4:          ptr("4242"),
		PayoutMethod:       ptr(models.PayoutPayPal),
		NotifyWeeklyDigest: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", profile.FullName)
	assert.Equal(t, "4242", profile.BankLast4)
	assert.Equal(t, models.PayoutPayPal, profile.PayoutMethod)
	assert.False(t, profile.NotifyWeeklyDigest)
	assert.True(t, profile.NotifyReportApproved)
}

func TestUpdateProfileValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t)

	var verr *ValidationError
	_, err := env.profiles.Update(user, &dto.UpdateProfileRequest{BankLast4: ptr("42a2")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bank_last4", verr.Field)

	_, err = env.profiles.Update(user, &dto.UpdateProfileRequest{PayoutMethod: ptr("cash")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payout_method", verr.Field)
}

func TestProfilesAreOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t)

	_, err := env.profiles.Get(uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = env.profiles.Update(uuid.New(), &dto.UpdateProfileRequest{FullName: ptr("Mallory")})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	profile, err := env.profiles.Get(user)
	require.NoError(t, err)
	assert.Empty(t, profile.FullName)
}

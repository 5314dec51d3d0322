package services

import (
	"testing"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNichesNormalizes(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.ProfileService
	acc := testutil.InsertAccount(t, env.db, "Ana", models.AccountTypeInfluencer, "old")

	resp, err := svc.SetNiches(env.db, acc.Session, &dto.SetNichesRequest{
		Niches: []string{" Fitness ", "fitness", "TRAVEL", ""},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fitness", "travel"}, resp.Niches)

	tooMany := make([]string, 11)
	for i := range tooMany {
		tooMany[i] = string(rune('a' + i))
	}
	_, err = svc.SetNiches(env.db, acc.Session, &dto.SetNichesRequest{Niches: tooMany})
	status, _ := apperrors.Message(err)
	assert.Equal(t, 400, status)
}

func TestCompleteOnboardingRequiresNiches(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.ProfileService
	acc := testutil.InsertAccount(t, env.db, "Brand Co", models.AccountTypeBrand)
	require.NoError(t, env.db.Model(acc.Profile).Update("onboarding_completed", false).Error)

	_, err := svc.CompleteOnboarding(env.db, acc.Session)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
	assert.Equal(t, map[string]interface{}{"missing": []string{"niches"}}, appErr.Details)

	_, err = svc.SetNiches(env.db, acc.Session, &dto.SetNichesRequest{Niches: []string{"beauty"}})
	require.NoError(t, err)

	resp, err := svc.CompleteOnboarding(env.db, acc.Session)
	require.NoError(t, err)
	assert.True(t, resp.OnboardingCompleted)
}

func TestDiscoverSkipsViewerAndIncompleteProfiles(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.ProfileService

	viewer := testutil.InsertAccount(t, env.db, "Brand Co", models.AccountTypeBrand, "fitness")
	fit := testutil.InsertAccount(t, env.db, "Fit", models.AccountTypeInfluencer, "fitness")
	testutil.InsertAccount(t, env.db, "Traveler", models.AccountTypeInfluencer, "travel")
	hidden := testutil.InsertAccount(t, env.db, "Hidden", models.AccountTypeInfluencer, "fitness")
	require.NoError(t, env.db.Model(hidden.Profile).Update("onboarding_completed", false).Error)

	all, err := svc.Discover(env.db, viewer.Session, repositories.DiscoverCriteria{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, r := range all {
		assert.NotEqual(t, viewer.Profile.ID, r.Profile.ID)
		assert.NotEqual(t, hidden.Profile.ID, r.Profile.ID)
	}

	filtered, err := svc.Discover(env.db, viewer.Session, repositories.DiscoverCriteria{Niche: " Fitness "})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, fit.Profile.ID, filtered[0].Profile.ID)

	_, err = svc.Discover(env.db, viewer.Session, repositories.DiscoverCriteria{AccountType: "agency"})
	status, _ := apperrors.Message(err)
	assert.Equal(t, 400, status)
}

func TestUpdatePaymentSettings(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.ProfileService
	acc := testutil.InsertAccount(t, env.db, "Ana", models.AccountTypeInfluencer, "fitness")

	rate := 250.0
	rateType := models.RatePerReel
	currency := models.CurrencyEUR
	free := true
	resp, err := svc.UpdatePaymentSettings(env.db, acc.Session, &dto.PaymentSettingsRequest{
		BaseRate:          &rate,
		RateType:          &rateType,
		Currency:          &currency,
		OpenToFreeCollabs: &free,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.BaseRate)
	assert.Equal(t, 250.0, *resp.BaseRate)
	assert.Equal(t, models.RatePerReel, resp.RateType)
	assert.Equal(t, models.CurrencyEUR, resp.Currency)
	assert.True(t, resp.OpenToFreeCollabs)

	negative := -1.0
	_, err = svc.UpdatePaymentSettings(env.db, acc.Session, &dto.PaymentSettingsRequest{BaseRate: &negative})
	status, _ := apperrors.Message(err)
	assert.Equal(t, 400, status)

	bad := models.Currency("XYZ")
	_, err = svc.UpdatePaymentSettings(env.db, acc.Session, &dto.PaymentSettingsRequest{Currency: &bad})
	status, _ = apperrors.Message(err)
	assert.Equal(t, 400, status)
}

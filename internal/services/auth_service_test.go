package services

import (
	"testing"
	"time"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/models"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, env *testEnv, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := env.services.AuthService.Register(env.db, &dto.RegisterRequest{
		Email:       email,
		Password:    "secret123",
		AccountType: models.AccountTypeInfluencer,
		DisplayName: " Ana ",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.AuthService

	resp := register(t, env, "Ana@Example.com")
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, "Ana", resp.User.DisplayName)
	assert.False(t, resp.User.OnboardingCompleted)
	assert.NotEmpty(t, resp.RefreshToken)

	session, err := auth.NewJWTService("test-secret", time.Hour).Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, session.UserID)
	assert.Equal(t, resp.User.ProfileID, session.ProfileID)
	assert.Equal(t, models.AccountTypeInfluencer, session.AccountType)

	_, err = svc.Register(env.db, &dto.RegisterRequest{
		Email: "ana@example.com", Password: "secret123", AccountType: models.AccountTypeBrand, DisplayName: "Dup",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.Login(env.db, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(env.db, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	login, err := svc.Login(env.db, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotNil(t, login.User.LastLoginAt)

	me, err := svc.Me(env.db, session)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ProfileID, me.ProfileID)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.AuthService

	_, err := svc.Register(env.db, &dto.RegisterRequest{
		Email: "a@example.com", Password: "123", AccountType: models.AccountTypeBrand, DisplayName: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	_, err = svc.Register(env.db, &dto.RegisterRequest{
		Email: "a@example.com", Password: "secret123", AccountType: "agency", DisplayName: "A",
	})
	assert.Error(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.AuthService
	first := register(t, env, "rotate@example.com")

	second, err := svc.RefreshToken(env.db, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.RefreshToken(env.db, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	require.NoError(t, svc.Logout(env.db, second.RefreshToken))
	_, err = svc.RefreshToken(env.db, second.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPurgeExpiredTokens(t *testing.T) {
	env := newTestEnv(t)
	resp := register(t, env, "purge@example.com")

	require.NoError(t, env.db.Create(&models.RefreshToken{
		UserID:    resp.User.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}).Error)

	purged, err := env.services.AuthService.PurgeExpiredTokens(env.db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}

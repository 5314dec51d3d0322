package services

import (
	"errors"
	"strings"
	"time"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	Me(db *gorm.DB, session auth.Session) (*dto.UserResponse, error)
	PurgeExpiredTokens(db *gorm.DB) (int64, error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	jwt              *auth.JWTService
	refreshTTL       time.Duration
	now              func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	jwt *auth.JWTService,
	refreshTTL time.Duration,
) AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &AuthServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwt:              jwt,
		refreshTTL:       refreshTTL,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the user with an empty profile and signs them in.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if !req.AccountType.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid account type")
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, apperrors.NewBadRequestError("Display name is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user := &models.User{Email: req.Email, PasswordHash: hash}
	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleAuthError(err)
	}

	profile := &models.Profile{
		UserID:      user.ID,
		DisplayName: displayName,
		AccountType: req.AccountType,
		Currency:    models.CurrencyUSD,
	}
	if err := s.profileRepo.Create(tx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp, err := s.issueTokens(tx, user, profile)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "account_type", profile.AccountType)
	return resp, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.profileRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, handleAuthError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(tx, user.ID, now); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.LastLoginAt = &now

	resp, err := s.issueTokens(tx, user, profile)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}

// RefreshToken rotates the refresh token: the presented one is revoked and
// a new pair is issued.
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	token, err := s.refreshTokenRepo.FindByToken(tx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if err := s.refreshTokenRepo.DeleteByToken(tx, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if token.Expired(s.now()) {
		if err := tx.Commit().Error; err != nil {
			return nil, apperrors.InternalError(err)
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(tx, token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	profile, err := s.profileRepo.FindByUserID(tx, user.ID)
	if err != nil {
		return nil, handleAuthError(err)
	}

	resp, err := s.issueTokens(tx, user, profile)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, session auth.Session) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, session.UserID)
	if err != nil {
		return nil, handleAuthError(err)
	}
	profile, err := s.profileRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, handleAuthError(err)
	}
	return buildUserResponse(user, profile), nil
}

func (s *AuthServiceImpl) PurgeExpiredTokens(db *gorm.DB) (int64, error) {
	n, err := s.refreshTokenRepo.DeleteExpired(db, s.now())
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

// ==========================
// Helpers
// ==========================

func (s *AuthServiceImpl) issueTokens(tx *gorm.DB, user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	access, err := s.jwt.Generate(auth.Session{
		UserID:      user.ID,
		ProfileID:   profile.ID,
		AccountType: profile.AccountType,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	raw, err := auth.NewRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.refreshTokenRepo.Create(tx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     raw,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: raw,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwt.Expiry().Seconds()),
		User:         buildUserResponse(user, profile),
	}, nil
}

func buildUserResponse(user *models.User, profile *models.Profile) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
	if profile != nil {
		resp.ProfileID = profile.ID
		resp.AccountType = profile.AccountType
		resp.DisplayName = profile.DisplayName
		resp.OnboardingCompleted = profile.OnboardingCompleted
	}
	return resp
}

func handleAuthError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.NewNotFoundError("auth", "User not found")
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	}
	return apperrors.InternalError(err)
}

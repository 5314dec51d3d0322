package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"collabex_backend/internal/algorithms"
	"collabex_backend/internal/auth"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const msgProfileNotAccessible = "Profile not found or not accessible"

type SocialPlatformService interface {
	Add(db *gorm.DB, session auth.Session, req *dto.AddPlatformRequest) (*dto.PlatformResponse, error)
	ListByProfile(db *gorm.DB, profileID string) ([]*dto.PlatformResponse, error)
	Update(db *gorm.DB, session auth.Session, platformID string, req *dto.UpdatePlatformRequest) (*dto.PlatformResponse, error)
	Delete(db *gorm.DB, session auth.Session, platformID string) error

	// Verify runs the format check (and the live check when configured)
	// for a platform the caller owns and marks it verified on success.
	Verify(ctx context.Context, db *gorm.DB, session auth.Session, req *dto.VerifyPlatformRequest) (*dto.VerifyPlatformResponse, error)
}

type SocialPlatformServiceImpl struct {
	platformRepo repositories.SocialPlatformRepository
	profileRepo  repositories.ProfileRepository
	checker      ProfileChecker
	now          func() time.Time
}

// NewSocialPlatformService builds the service. checker may be nil, in which
// case verification is format-only.
func NewSocialPlatformService(
	platformRepo repositories.SocialPlatformRepository,
	profileRepo repositories.ProfileRepository,
	checker ProfileChecker,
) SocialPlatformService {
	return &SocialPlatformServiceImpl{
		platformRepo: platformRepo,
		profileRepo:  profileRepo,
		checker:      checker,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *SocialPlatformServiceImpl) Add(db *gorm.DB, session auth.Session, req *dto.AddPlatformRequest) (*dto.PlatformResponse, error) {
	name := strings.TrimSpace(req.PlatformName)
	handle := strings.TrimSpace(req.Handle)
	if name == "" || handle == "" {
		return nil, apperrors.NewBadRequestError("Platform name and handle are required")
	}
	if _, known := algorithms.LookupPlatform(name); known {
		name = strings.ToLower(name)
	}

	platform := &models.SocialPlatform{
		ProfileID:     session.ProfileID,
		PlatformName:  name,
		Handle:        handle,
		URL:           strings.TrimSpace(req.URL),
		FollowerCount: req.FollowerCount,
	}
	if err := s.platformRepo.Create(db, platform); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPlatformResponse(platform), nil
}

func (s *SocialPlatformServiceImpl) ListByProfile(db *gorm.DB, profileID string) ([]*dto.PlatformResponse, error) {
	platforms, err := s.platformRepo.ListByProfile(db, profileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.PlatformResponse, 0, len(platforms))
	for i := range platforms {
		out = append(out, dto.NewPlatformResponse(&platforms[i]))
	}
	return out, nil
}

func (s *SocialPlatformServiceImpl) Update(db *gorm.DB, session auth.Session, platformID string, req *dto.UpdatePlatformRequest) (*dto.PlatformResponse, error) {
	platform, err := s.ownedPlatform(db, session, platformID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	identityChanged := false
	if req.Handle != nil {
		handle := strings.TrimSpace(*req.Handle)
		if handle == "" {
			return nil, apperrors.NewBadRequestError("Handle cannot be empty")
		}
		if handle != platform.Handle {
			identityChanged = true
		}
		updates["handle"] = handle
	}
	if req.URL != nil {
		u := strings.TrimSpace(*req.URL)
		if u != platform.URL {
			identityChanged = true
		}
		updates["url"] = u
	}
	if req.FollowerCount != nil {
		updates["follower_count"] = *req.FollowerCount
	}
	if identityChanged {
		updates["is_verified"] = false
		updates["verified_at"] = nil
	}
	if len(updates) == 0 {
		return dto.NewPlatformResponse(platform), nil
	}

	if err := s.platformRepo.Update(db, platform.ID, updates); err != nil {
		return nil, handlePlatformError(err)
	}

	updated, err := s.platformRepo.FindByID(db, platform.ID)
	if err != nil {
		return nil, handlePlatformError(err)
	}
	return dto.NewPlatformResponse(updated), nil
}

func (s *SocialPlatformServiceImpl) Delete(db *gorm.DB, session auth.Session, platformID string) error {
	platform, err := s.ownedPlatform(db, session, platformID)
	if err != nil {
		return err
	}
	if err := s.platformRepo.Delete(db, platform.ID); err != nil {
		return handlePlatformError(err)
	}
	return nil
}

// Verify answers with verified=false and an explanation when the URL does
// not look like a profile. Only ownership and storage failures are errors.
func (s *SocialPlatformServiceImpl) Verify(ctx context.Context, db *gorm.DB, session auth.Session, req *dto.VerifyPlatformRequest) (*dto.VerifyPlatformResponse, error) {
	platform, err := s.ownedPlatform(db, session, req.PlatformID)
	if err != nil {
		return nil, err
	}

	result := algorithms.VerifyPlatformURL(req.PlatformName, req.Handle, req.URL)
	if result.Valid && s.checker != nil {
		exists, err := s.checker.Exists(ctx, result.ProfileURL)
		if err != nil {
			logger.CtxWarn(ctx, "live profile check failed", "platform_id", platform.ID, "url", result.ProfileURL, "error", err)
		}
		if !exists {
			result = algorithms.VerificationResult{Error: msgProfileNotAccessible}
		}
	}

	if result.Valid {
		if err := s.platformRepo.MarkVerified(db, platform.ID, s.now()); err != nil {
			return nil, apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "platform verified", "platform_id", platform.ID, "platform", req.PlatformName)
	}

	return &dto.VerifyPlatformResponse{
		Success:     true,
		Verified:    result.Valid,
		Valid:       result.Valid,
		DisplayName: result.DisplayName,
		Error:       result.Error,
	}, nil
}

// ownedPlatform loads the platform and checks that its profile belongs to
// the session user.
func (s *SocialPlatformServiceImpl) ownedPlatform(db *gorm.DB, session auth.Session, platformID string) (*models.SocialPlatform, error) {
	platform, err := s.platformRepo.FindByID(db, platformID)
	if err != nil {
		return nil, handlePlatformError(err)
	}

	owner, err := s.profileRepo.FindByID(db, platform.ProfileID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrPlatformNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if owner.UserID != session.UserID {
		return nil, apperrors.ErrNotPlatformOwner
	}
	return platform, nil
}

func handlePlatformError(err error) error {
	if errors.Is(err, repositories.ErrPlatformNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrPlatformNotFound
	}
	return apperrors.InternalError(err)
}

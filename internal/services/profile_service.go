package services

import (
	"errors"
	"strings"

	"collabex_backend/internal/algorithms"
	"collabex_backend/internal/auth"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// =======================
// Interface
// =======================

type ProfileService interface {
	GetMine(db *gorm.DB, session auth.Session) (*dto.ProfileResponse, error)
	GetByID(db *gorm.DB, profileID string) (*dto.ProfileResponse, error)
	Update(db *gorm.DB, session auth.Session, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	SetNiches(db *gorm.DB, session auth.Session, req *dto.SetNichesRequest) (*dto.ProfileResponse, error)
	UpdatePaymentSettings(db *gorm.DB, session auth.Session, req *dto.PaymentSettingsRequest) (*dto.ProfileResponse, error)
	CompleteOnboarding(db *gorm.DB, session auth.Session) (*dto.ProfileResponse, error)
	Discover(db *gorm.DB, session auth.Session, criteria repositories.DiscoverCriteria) ([]*dto.RankedProfileResponse, error)
}

// =======================
// Implementation
// =======================

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	reviewRepo  repositories.ReviewRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, reviewRepo repositories.ReviewRepository) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *ProfileServiceImpl) GetMine(db *gorm.DB, session auth.Session) (*dto.ProfileResponse, error) {
	return s.GetByID(db, session.ProfileID)
}

// GetByID returns the profile with niches, platforms, portfolio and its
// rating summary.
func (s *ProfileServiceImpl) GetByID(db *gorm.DB, profileID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindWithDetails(db, profileID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	summary, err := s.reviewRepo.Summary(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewProfileResponse(profile)
	resp.Rating = summary
	return resp, nil
}

func (s *ProfileServiceImpl) Update(db *gorm.DB, session auth.Session, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, apperrors.NewBadRequestError("Display name cannot be empty")
		}
		updates["display_name"] = name
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.AudienceTier != nil {
		updates["audience_tier"] = strings.TrimSpace(*req.AudienceTier)
	}

	if len(updates) > 0 {
		if err := s.profileRepo.Update(db, session.ProfileID, updates); err != nil {
			return nil, handleProfileError(err)
		}
	}
	return s.GetByID(db, session.ProfileID)
}

// SetNiches replaces the niche set. Names are lower-cased and deduplicated.
func (s *ProfileServiceImpl) SetNiches(db *gorm.DB, session auth.Session, req *dto.SetNichesRequest) (*dto.ProfileResponse, error) {
	niches := normalizeNiches(req.Niches)
	if len(niches) > 10 {
		return nil, apperrors.NewBadRequestError("At most 10 niches are allowed")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.profileRepo.FindByID(tx, session.ProfileID); err != nil {
		return nil, handleProfileError(err)
	}
	if err := s.profileRepo.ReplaceNiches(tx, session.ProfileID, niches); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetByID(db, session.ProfileID)
}

func (s *ProfileServiceImpl) UpdatePaymentSettings(db *gorm.DB, session auth.Session, req *dto.PaymentSettingsRequest) (*dto.ProfileResponse, error) {
	updates := map[string]interface{}{}
	if req.BaseRate != nil {
		if *req.BaseRate < 0 {
			return nil, apperrors.NewBadRequestError("Base rate cannot be negative")
		}
		updates["base_rate"] = *req.BaseRate
	}
	if req.RateType != nil {
		if !req.RateType.Valid() {
			return nil, apperrors.NewBadRequestError("Invalid rate type")
		}
		updates["rate_type"] = *req.RateType
	}
	if req.Currency != nil {
		if !req.Currency.Valid() {
			return nil, apperrors.NewBadRequestError("Invalid currency")
		}
		updates["currency"] = *req.Currency
	}
	if req.OpenToFreeCollabs != nil {
		updates["open_to_free_collabs"] = *req.OpenToFreeCollabs
	}

	if len(updates) > 0 {
		if err := s.profileRepo.Update(db, session.ProfileID, updates); err != nil {
			return nil, handleProfileError(err)
		}
	}
	return s.GetByID(db, session.ProfileID)
}

// CompleteOnboarding makes the profile visible in discover and matching.
// A display name and at least one niche are required.
func (s *ProfileServiceImpl) CompleteOnboarding(db *gorm.DB, session auth.Session) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindWithDetails(db, session.ProfileID)
	if err != nil {
		return nil, handleProfileError(err)
	}
	if profile.OnboardingCompleted {
		return s.GetByID(db, profile.ID)
	}

	var missing []string
	if strings.TrimSpace(profile.DisplayName) == "" {
		missing = append(missing, "display_name")
	}
	if len(profile.Niches) == 0 {
		missing = append(missing, "niches")
	}
	if len(missing) > 0 {
		return nil, apperrors.ErrInvalidOperation("profile", "Profile is incomplete").
			WithDetails(map[string]interface{}{"missing": missing})
	}

	if err := s.profileRepo.Update(db, profile.ID, map[string]interface{}{"onboarding_completed": true}); err != nil {
		return nil, handleProfileError(err)
	}
	return s.GetByID(db, profile.ID)
}

// Discover lists onboarded profiles other than the viewer, best match first.
func (s *ProfileServiceImpl) Discover(db *gorm.DB, session auth.Session, criteria repositories.DiscoverCriteria) ([]*dto.RankedProfileResponse, error) {
	if criteria.AccountType != "" && !criteria.AccountType.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid account type")
	}
	criteria.Niche = strings.ToLower(strings.TrimSpace(criteria.Niche))

	viewer, err := s.profileRepo.FindWithDetails(db, session.ProfileID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	profiles, err := s.profileRepo.Discover(db, viewer.ID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rankProfiles(viewer, profiles), nil
}

// ==========================
// Helpers
// ==========================

func rankProfiles(viewer *models.Profile, profiles []models.Profile) []*dto.RankedProfileResponse {
	byID := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	ranked := algorithms.RankProfiles(viewer, profiles)
	out := make([]*dto.RankedProfileResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, &dto.RankedProfileResponse{
			Profile: dto.NewProfileResponse(byID[r.ProfileID]),
			Score:   r.Score,
			Reasons: r.Reasons,
		})
	}
	return out
}

func normalizeNiches(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, n := range in {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func handleProfileError(err error) error {
	if errors.Is(err, repositories.ErrProfileNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return apperrors.InternalError(err)
}

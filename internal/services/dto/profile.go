package dto

import (
	"time"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
)

// ======================
// Requests
// ======================

type UpdateProfileRequest struct {
	DisplayName  *string `json:"display_name,omitempty" binding:"omitempty,min=1,max=100"`
	Bio          *string `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Location     *string `json:"location,omitempty" binding:"omitempty,max=200"`
	AudienceTier *string `json:"audience_tier,omitempty" binding:"omitempty,max=50"`
}

type SetNichesRequest struct {
	Niches []string `json:"niches" binding:"max=10,dive,min=1,max=50"`
}

type PaymentSettingsRequest struct {
	BaseRate          *float64         `json:"base_rate,omitempty" binding:"omitempty,gte=0"`
	RateType          *models.RateType `json:"rate_type,omitempty" binding:"omitempty,rate_type"`
	Currency          *models.Currency `json:"currency,omitempty" binding:"omitempty,currency"`
	OpenToFreeCollabs *bool            `json:"open_to_free_collabs,omitempty"`
}

// ======================
// Responses
// ======================

type ProfileSummary struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	DisplayName string             `json:"display_name"`
	AvatarURL   string             `json:"avatar_url"`
	AccountType models.AccountType `json:"account_type"`
}

type ProfileResponse struct {
	ID                  string             `json:"id"`
	UserID              string             `json:"user_id"`
	DisplayName         string             `json:"display_name"`
	AvatarURL           string             `json:"avatar_url"`
	BannerURL           string             `json:"banner_url"`
	Bio                 string             `json:"bio"`
	Location            string             `json:"location"`
	AccountType         models.AccountType `json:"account_type"`
	AudienceTier        string             `json:"audience_tier"`
	OnboardingCompleted bool               `json:"onboarding_completed"`

	BaseRate          *float64        `json:"base_rate"`
	RateType          models.RateType `json:"rate_type,omitempty"`
	Currency          models.Currency `json:"currency"`
	OpenToFreeCollabs bool            `json:"open_to_free_collabs"`

	Niches    []string                    `json:"niches"`
	Platforms []*PlatformResponse         `json:"platforms,omitempty"`
	Portfolio []*PortfolioItemResponse    `json:"portfolio,omitempty"`
	Rating    *repositories.RatingSummary `json:"rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RankedProfileResponse is a discover or matching candidate.
type RankedProfileResponse struct {
	Profile *ProfileResponse `json:"profile"`
	Score   float64          `json:"score"`
	Reasons []string         `json:"reasons"`
}

func NewProfileSummary(p *models.Profile) *ProfileSummary {
	if p == nil {
		return nil
	}
	return &ProfileSummary{
		ID:          p.ID,
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		AccountType: p.AccountType,
	}
}

// NewProfileResponse maps a profile with whatever associations were preloaded.
func NewProfileResponse(p *models.Profile) *ProfileResponse {
	resp := &ProfileResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		DisplayName:         p.DisplayName,
		AvatarURL:           p.AvatarURL,
		BannerURL:           p.BannerURL,
		Bio:                 p.Bio,
		Location:            p.Location,
		AccountType:         p.AccountType,
		AudienceTier:        p.AudienceTier,
		OnboardingCompleted: p.OnboardingCompleted,
		BaseRate:            p.BaseRate,
		RateType:            p.RateType,
		Currency:            p.Currency,
		OpenToFreeCollabs:   p.OpenToFreeCollabs,
		Niches:              p.NicheNames(),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for i := range p.Platforms {
		resp.Platforms = append(resp.Platforms, NewPlatformResponse(&p.Platforms[i]))
	}
	for i := range p.Portfolio {
		resp.Portfolio = append(resp.Portfolio, NewPortfolioItemResponse(&p.Portfolio[i]))
	}
	return resp
}

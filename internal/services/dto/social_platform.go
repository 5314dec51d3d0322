package dto

import (
	"time"

	"collabex_backend/internal/models"
)

type AddPlatformRequest struct {
	PlatformName  string `json:"platform_name" binding:"required,min=1,max=50"`
	Handle        string `json:"handle" binding:"required,max=100"`
	URL           string `json:"url" binding:"omitempty,max=500,http_url"`
	FollowerCount *int64 `json:"follower_count,omitempty" binding:"omitempty,gte=0"`
}

// UpdatePlatformRequest changes platform details. Changing the handle or the
// URL clears the verified flag.
type UpdatePlatformRequest struct {
	Handle        *string `json:"handle,omitempty" binding:"omitempty,min=1,max=100"`
	URL           *string `json:"url,omitempty" binding:"omitempty,max=500,http_url"`
	FollowerCount *int64  `json:"follower_count,omitempty" binding:"omitempty,gte=0"`
}

// VerifyPlatformRequest is the body of POST /functions/verify-social-platform.
type VerifyPlatformRequest struct {
	PlatformID   string `json:"platformId"`
	PlatformName string `json:"platformName"`
	Handle       string `json:"handle"`
	URL          string `json:"url"`
}

type VerifyPlatformResponse struct {
	Success     bool   `json:"success"`
	Verified    bool   `json:"verified"`
	Valid       bool   `json:"valid"`
	DisplayName string `json:"displayName,omitempty"`
	Error       string `json:"error,omitempty"`
}

type PlatformResponse struct {
	ID            string     `json:"id"`
	ProfileID     string     `json:"profile_id"`
	PlatformName  string     `json:"platform_name"`
	Handle        string     `json:"handle"`
	URL           string     `json:"url"`
	FollowerCount *int64     `json:"follower_count"`
	IsVerified    bool       `json:"is_verified"`
	VerifiedAt    *time.Time `json:"verified_at"`
}

func NewPlatformResponse(p *models.SocialPlatform) *PlatformResponse {
	return &PlatformResponse{
		ID:            p.ID,
		ProfileID:     p.ProfileID,
		PlatformName:  p.PlatformName,
		Handle:        p.Handle,
		URL:           p.URL,
		FollowerCount: p.FollowerCount,
		IsVerified:    p.IsVerified,
		VerifiedAt:    p.VerifiedAt,
	}
}

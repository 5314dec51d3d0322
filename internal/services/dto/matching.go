package dto

import (
	"time"

	"collabex_backend/internal/models"
)

type SwipeRequest struct {
	ProfileID string                `json:"profile_id" binding:"required,uuid"`
	Direction models.SwipeDirection `json:"direction" binding:"required,swipe_direction"`
}

type SwipeResponse struct {
	Matched bool           `json:"matched"`
	Match   *MatchResponse `json:"match,omitempty"`
}

type MatchResponse struct {
	ID        string          `json:"id"`
	Partner   *ProfileSummary `json:"partner"`
	CreatedAt time.Time       `json:"created_at"`
}

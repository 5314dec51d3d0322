package dto

import (
	"time"

	"collabex_backend/internal/repositories"
)

type CreateReviewRequest struct {
	RevieweeID string `json:"reviewee_id" binding:"required,uuid"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Content    string `json:"content" binding:"max=2000"`
}

type ReviewResponse struct {
	ID              string          `json:"id"`
	ReviewerID      string          `json:"reviewer_id"`
	RevieweeID      string          `json:"reviewee_id"`
	CollaborationID *string         `json:"collaboration_id"`
	Rating          int             `json:"rating"`
	Content         string          `json:"content"`
	Reviewer        *ProfileSummary `json:"reviewer,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []*ReviewResponse           `json:"reviews"`
	Summary *repositories.RatingSummary `json:"summary"`
}

type CanReviewResponse struct {
	CanReview       bool    `json:"can_review"`
	AlreadyReviewed bool    `json:"already_reviewed"`
	CollaborationID *string `json:"collaboration_id,omitempty"`
}

package dto

import (
	"time"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
)

type CreateCollaborationRequest struct {
	PartnerProfileID string `json:"partner_profile_id" binding:"required,uuid"`
	Title            string `json:"title" binding:"required,max=200"`
	Description      string `json:"description" binding:"max=2000"`
}

type UpdateCollaborationStatusRequest struct {
	Status models.CollaborationStatus `json:"status" binding:"required,collab_status"`
}

// ListCollaborationsQuery is the query string of GET /collaborations.
type ListCollaborationsQuery = repositories.CollaborationCriteria

type CollaborationResponse struct {
	ID          string                     `json:"id"`
	RequesterID string                     `json:"requester_id"`
	RecipientID string                     `json:"recipient_id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Status      models.CollaborationStatus `json:"status"`
	CompletedAt *time.Time                 `json:"completed_at"`

	// Viewer-relative fields.
	Role               string                       `json:"role"`
	AllowedTransitions []models.CollaborationStatus `json:"allowed_transitions"`
	CanReview          bool                         `json:"can_review"`
	Partner            *ProfileSummary              `json:"partner,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

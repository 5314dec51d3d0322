package dto

import (
	"time"

	"collabex_backend/internal/models"
)

type CreatePostRequest struct {
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Description  string     `json:"description" binding:"required,min=1,max=5000"`
	Requirements string     `json:"requirements" binding:"max=2000"`
	Niche        string     `json:"niche" binding:"max=50"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Platforms    []string   `json:"platforms" binding:"max=10,dive,min=1,max=50"`
}

type UpdatePostStatusRequest struct {
	Status models.PostStatus `json:"status" binding:"required,post_status"`
}

type ApplyRequest struct {
	Message string `json:"message" binding:"max=1000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,application_status"`
}

type PostResponse struct {
	ID           string            `json:"id"`
	AuthorID     string            `json:"author_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Requirements string            `json:"requirements"`
	Niche        string            `json:"niche"`
	Deadline     *time.Time        `json:"deadline"`
	Platforms    []string          `json:"platforms"`
	Status       models.PostStatus `json:"status"`
	Author       *ProfileSummary   `json:"author,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	PostID      string                   `json:"post_id"`
	ApplicantID string                   `json:"applicant_id"`
	Message     string                   `json:"message"`
	Status      models.ApplicationStatus `json:"status"`
	Applicant   *ProfileSummary          `json:"applicant,omitempty"`
	Post        *PostResponse            `json:"post,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

func NewPostResponse(p *models.CollabPost) *PostResponse {
	platforms := p.GetPlatforms()
	if platforms == nil {
		platforms = []string{}
	}
	return &PostResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Title:        p.Title,
		Description:  p.Description,
		Requirements: p.Requirements,
		Niche:        p.Niche,
		Deadline:     p.Deadline,
		Platforms:    platforms,
		Status:       p.Status,
		Author:       NewProfileSummary(p.Author),
		CreatedAt:    p.CreatedAt,
	}
}

func NewApplicationResponse(a *models.CollabApplication) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:          a.ID,
		PostID:      a.PostID,
		ApplicantID: a.ApplicantID,
		Message:     a.Message,
		Status:      a.Status,
		Applicant:   NewProfileSummary(a.Applicant),
		CreatedAt:   a.CreatedAt,
	}
	if a.Post != nil {
		resp.Post = NewPostResponse(a.Post)
	}
	return resp
}

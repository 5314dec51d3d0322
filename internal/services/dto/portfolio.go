package dto

import (
	"time"

	"collabex_backend/internal/models"
)

type UpdatePortfolioItemRequest struct {
	Caption string `json:"caption" binding:"max=500"`
}

type PortfolioItemResponse struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPortfolioItemResponse(item *models.PortfolioItem) *PortfolioItemResponse {
	return &PortfolioItemResponse{
		ID:        item.ID,
		ProfileID: item.ProfileID,
		ImageURL:  item.ImageURL,
		Caption:   item.Caption,
		SortOrder: item.SortOrder,
		CreatedAt: item.CreatedAt,
	}
}

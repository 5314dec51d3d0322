package models

type PortfolioItem struct {
	BaseModel
	ProfileID string `gorm:"size:36;not null;index" json:"profile_id"`
	ImageURL  string `gorm:"size:1000;not null" json:"image_url"`
	Caption   string `gorm:"size:500" json:"caption"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

package models

type Review struct {
	BaseModel
	ReviewerID      string  `gorm:"size:36;not null;uniqueIndex:idx_review_pair" json:"reviewer_id"`
	RevieweeID      string  `gorm:"size:36;not null;uniqueIndex:idx_review_pair;index" json:"reviewee_id"`
	CollaborationID *string `gorm:"size:36;index" json:"collaboration_id"`
	Rating          int     `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Content         string  `gorm:"size:2000" json:"content"`

	Reviewer *Profile `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type CollabPost struct {
	BaseModel
	AuthorID     string         `gorm:"size:36;not null;index" json:"author_id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Description  string         `gorm:"size:5000;not null" json:"description"`
	Requirements string         `gorm:"size:2000" json:"requirements"`
	Niche        string         `gorm:"size:50;index" json:"niche"`
	Deadline     *time.Time     `json:"deadline"`
	Platforms    datatypes.JSON `json:"platforms"`
	Status       PostStatus     `gorm:"size:20;not null;default:'open';index" json:"status"`

	Author *Profile `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (p *CollabPost) GetPlatforms() []string {
	var platforms []string
	if len(p.Platforms) > 0 {
		_ = json.Unmarshal(p.Platforms, &platforms)
	}
	return platforms
}

func (p *CollabPost) SetPlatforms(platforms []string) {
	if platforms == nil {
		platforms = []string{}
	}
	raw, _ := json.Marshal(platforms)
	p.Platforms = datatypes.JSON(raw)
}

type CollabApplication struct {
	BaseModel
	PostID      string            `gorm:"size:36;not null;uniqueIndex:idx_application_post_applicant" json:"post_id"`
	ApplicantID string            `gorm:"size:36;not null;uniqueIndex:idx_application_post_applicant;index" json:"applicant_id"`
	Message     string            `gorm:"size:1000" json:"message"`
	Status      ApplicationStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	Post      *CollabPost `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Applicant *Profile    `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}

package models

import "time"

type SocialPlatform struct {
	BaseModel
	ProfileID     string     `gorm:"size:36;not null;index" json:"profile_id"`
	PlatformName  string     `gorm:"size:50;not null" json:"platform_name"`
	Handle        string     `gorm:"size:100;not null" json:"handle"`
	URL           string     `gorm:"size:500" json:"url"`
	FollowerCount *int64     `json:"follower_count"`
	IsVerified    bool       `gorm:"default:false" json:"is_verified"`
	VerifiedAt    *time.Time `json:"verified_at"`
}

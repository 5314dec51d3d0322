package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null;size:128" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

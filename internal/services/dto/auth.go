package dto

import (
	"time"

	"collabex_backend/internal/models"
)

// RegisterRequest creates a user and an empty profile.
type RegisterRequest struct {
	Email       string             `json:"email" binding:"required,email,max=255"`
	Password    string             `json:"password" binding:"required,min=6,max=72"`
	AccountType models.AccountType `json:"account_type" binding:"required,account_type"`
	DisplayName string             `json:"display_name" binding:"required,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse carries a token pair.
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"` // seconds
	User         *UserResponse `json:"user"`
}

type UserResponse struct {
	ID                  string             `json:"id"`
	Email               string             `json:"email"`
	ProfileID           string             `json:"profile_id"`
	AccountType         models.AccountType `json:"account_type"`
	DisplayName         string             `json:"display_name"`
	OnboardingCompleted bool               `json:"onboarding_completed"`
	LastLoginAt         *time.Time         `json:"last_login_at,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

package handlers

import (
	"collabex_backend/internal/middleware"
	"collabex_backend/internal/services"
	"collabex_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler           *AuthHandler
	ProfileHandler        *ProfileHandler
	SocialPlatformHandler *SocialPlatformHandler
	CollaborationHandler  *CollaborationHandler
	NotificationHandler   *NotificationHandler
	PostHandler           *PostHandler
	MatchingHandler       *MatchingHandler
	ChatHandler           *ChatHandler
	ReviewHandler         *ReviewHandler
	PortfolioHandler      *PortfolioHandler
	UploadHandler         *UploadHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator, verifier middleware.TokenVerifier) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:           NewAuthHandler(base, sc.AuthService),
		ProfileHandler:        NewProfileHandler(base, sc.ProfileService),
		SocialPlatformHandler: NewSocialPlatformHandler(base, sc.SocialPlatformService, verifier),
		CollaborationHandler:  NewCollaborationHandler(base, sc.CollaborationService),
		NotificationHandler:   NewNotificationHandler(base, sc.NotificationService),
		PostHandler:           NewPostHandler(base, sc.PostService),
		MatchingHandler:       NewMatchingHandler(base, sc.MatchingService),
		ChatHandler:           NewChatHandler(base, sc.ChatService),
		ReviewHandler:         NewReviewHandler(base, sc.ReviewService),
		PortfolioHandler:      NewPortfolioHandler(base, sc.PortfolioService),
		UploadHandler:         NewUploadHandler(base, sc.UploadService),
	}
}

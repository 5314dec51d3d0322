package services

import (
	"time"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/email"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/storage"
	"collabex_backend/ws"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService           AuthService
	ProfileService        ProfileService
	SocialPlatformService SocialPlatformService
	CollaborationService  CollaborationService
	RelationshipService   RelationshipService
	NotificationService   NotificationService
	PostService           PostService
	MatchingService       MatchingService
	ChatService           ChatService
	ReviewService         ReviewService
	PortfolioService      PortfolioService
	UploadService         UploadService

	OutboxRepo repositories.OutboxRepository
}

// Dependencies are the infrastructure pieces services are built on.
type Dependencies struct {
	JWT        *auth.JWTService
	RefreshTTL time.Duration
	Storage    storage.Storage
	Upload     *UploadConfig
	Publisher  ws.Publisher
	Mailer     email.Provider
	Composer   *email.NotificationComposer
	// Checker enables live profile checks during verification. Optional.
	Checker ProfileChecker
}

// NewServiceContainer wires repositories into services.
func NewServiceContainer(deps Dependencies) (*ServiceContainer, error) {
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	profileRepo := repositories.NewProfileRepository()
	platformRepo := repositories.NewSocialPlatformRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	collabRepo := repositories.NewCollaborationRepository()
	relationshipRepo := repositories.NewRelationshipRepository()
	notificationRepo := repositories.NewNotificationRepository()
	outboxRepo := repositories.NewOutboxRepository()
	postRepo := repositories.NewPostRepository()
	matchRepo := repositories.NewMatchRepository()
	messageRepo := repositories.NewMessageRepository()
	reviewRepo := repositories.NewReviewRepository()

	if deps.Publisher == nil {
		deps.Publisher = ws.NopPublisher{}
	}
	if deps.Mailer == nil {
		deps.Mailer = email.NewLogProvider(nil)
	}
	if deps.Composer == nil {
		templates, err := email.NewDefaultTemplateManager()
		if err != nil {
			return nil, err
		}
		deps.Composer = email.NewNotificationComposer(templates, "")
	}

	relationshipService := NewRelationshipService(profileRepo, relationshipRepo)
	notificationService := NewNotificationService(
		notificationRepo, userRepo, outboxRepo, relationshipService,
		deps.Publisher, deps.Mailer, deps.Composer,
	)

	return &ServiceContainer{
		AuthService:           NewAuthService(userRepo, profileRepo, refreshTokenRepo, deps.JWT, deps.RefreshTTL),
		ProfileService:        NewProfileService(profileRepo, reviewRepo),
		SocialPlatformService: NewSocialPlatformService(platformRepo, profileRepo, deps.Checker),
		CollaborationService:  NewCollaborationService(collabRepo, profileRepo, notificationService),
		RelationshipService:   relationshipService,
		NotificationService:   notificationService,
		PostService:           NewPostService(postRepo, profileRepo, notificationService),
		MatchingService:       NewMatchingService(profileRepo, matchRepo),
		ChatService:           NewChatService(messageRepo, matchRepo, profileRepo, relationshipRepo, deps.Publisher),
		ReviewService:         NewReviewService(reviewRepo, collabRepo, profileRepo),
		PortfolioService:      NewPortfolioService(portfolioRepo, deps.Storage),
		UploadService:         NewUploadService(profileRepo, portfolioRepo, deps.Storage, deps.Upload),
		OutboxRepo:            outboxRepo,
	}, nil
}

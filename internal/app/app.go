package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"collabex_backend/database"
	_ "collabex_backend/docs"
	"collabex_backend/internal/auth"
	"collabex_backend/internal/config"
	"collabex_backend/internal/email"
	"collabex_backend/internal/handlers"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/middleware"
	"collabex_backend/internal/models"
	"collabex_backend/internal/routes"
	"collabex_backend/internal/services"
	"collabex_backend/internal/storage"
	"collabex_backend/internal/validator"
	"collabex_backend/internal/workers"
	"collabex_backend/pkg/apperrors"
	"collabex_backend/ws"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// App is the assembled backend: database, services, realtime hub and router.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	JWT      *auth.JWTService
	Services *services.ServiceContainer
	Hub      *ws.Hub
	Router   *gin.Engine

	broker ws.Broker
}

// New connects to the database and wires everything on top of it.
func New(cfg *config.Config) (*App, error) {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(cfg.Database, cfg.Server.Debug)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected")

	return NewWithDB(cfg, db)
}

// NewWithDB wires the application on an existing connection.
func NewWithDB(cfg *config.Config, db *gorm.DB) (*App, error) {
	apperrors.SetDebug(cfg.Server.Debug)

	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	broker := newBroker(cfg.Redis)
	hub := ws.NewHub(broker)

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	smtpConfig := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		Timeout:   cfg.Email.Timeout,
	}

	var mailer email.Provider
	if cfg.Email.Enabled {
		mailer = email.NewSMTPProvider(smtpConfig, templates)
		logger.Info("Email enabled", "smtp_host", cfg.Email.SMTPHost)
	} else {
		mailer = email.NewLogProvider(templates)
		logger.Warn("Email disabled, messages are only logged")
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	deps := services.Dependencies{
		JWT:        jwtService,
		RefreshTTL: time.Duration(cfg.JWT.RefreshTTL) * time.Hour,
		Storage:    store,
		Upload: &services.UploadConfig{
			MaxFileSize:  cfg.Upload.MaxSize,
			AllowedTypes: cfg.Upload.AllowedTypes,
			ImageQuality: cfg.Upload.ImageQuality,
		},
		Publisher: hub,
		Mailer:    mailer,
		Composer:  email.NewNotificationComposer(templates, smtpConfig.FromAddress()),
	}
	if cfg.Verification.LiveCheck {
		deps.Checker = services.NewHTTPProfileChecker(
			cfg.Verification.Timeout,
			cfg.Verification.RequestsPerSecond,
			cfg.Verification.Burst,
		)
		logger.Info("Live platform verification enabled")
	}

	serviceContainer, err := services.NewServiceContainer(deps)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		DB:       db,
		JWT:      jwtService,
		Services: serviceContainer,
		Hub:      hub,
		broker:   broker,
	}
	a.Router = SetupRouter(cfg, db, serviceContainer, hub, jwtService)
	return a, nil
}

func newBroker(cfg config.RedisConfig) ws.Broker {
	if !cfg.Enabled {
		logger.Info("Realtime broker: in-memory")
		return ws.NewMemoryBroker(256)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	logger.Info("Realtime broker: redis", "addr", cfg.Addr, "channel", cfg.Channel)
	return ws.NewRedisBroker(client, cfg.Channel)
}

// SetupRouter builds the gin engine with middleware and every route.
func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	sc *services.ServiceContainer,
	hub *ws.Hub,
	jwtService *auth.JWTService,
) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))
	router.Use(middleware.DBMiddleware(db))

	appHandlers := handlers.NewAppHandlers(sc, validator.New(), jwtService)
	wsHandler := ws.NewWebSocketHandler(hub, nil)

	routes.SetupPublicRoutes(router, routes.PublicOptions{
		ServeUploads: cfg.Storage.Type == "local",
		UploadsURL:   cfg.Storage.BaseURL,
		UploadsPath:  cfg.Storage.BasePath,
		Swagger:      ginSwagger.WrapHandler(swaggerFiles.Handler),
	})
	routes.RegisterRoutes(router, appHandlers, wsHandler, jwtService)

	return router
}

// StartRealtime pumps broker events to the websocket clients of this node.
// Every process that serves /ws must run it.
func (a *App) StartRealtime(ctx context.Context) {
	go func() {
		if err := a.Hub.Run(ctx); err != nil {
			logger.Error("Realtime hub stopped", "error", err)
		}
	}()
}

// StartWorkers launches the outbox, post expiry and token purge workers.
func (a *App) StartWorkers(ctx context.Context) {
	outbox := workers.NewOutboxWorker(a.DB, a.Services.OutboxRepo, workers.OutboxConfig{
		PollInterval: a.Config.Outbox.PollInterval,
		BatchSize:    a.Config.Outbox.BatchSize,
		MaxAttempts:  a.Config.Outbox.MaxAttempts,
		BaseBackoff:  a.Config.Outbox.BaseBackoff,
		MaxBackoff:   a.Config.Outbox.MaxBackoff,
	})
	outbox.Handle(models.OutboxKindNotification, a.Services.NotificationService.DeliverDispatch)
	outbox.Handle(models.OutboxKindEmail, a.Services.NotificationService.DeliverEmail)
	outbox.Start(ctx)

	workers.NewPostWorker(a.DB, a.Services.PostService, time.Hour).Start(ctx)
	workers.NewTokenWorker(a.DB, a.Services.AuthService, 6*time.Hour).Start(ctx)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the broker and the database pool.
func (a *App) Close() {
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			logger.Warn("Broker close failed", "error", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

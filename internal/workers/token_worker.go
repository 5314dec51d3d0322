package workers

import (
	"context"
	"time"

	"collabex_backend/internal/logger"
	"collabex_backend/internal/services"

	"gorm.io/gorm"
)

// TokenWorker purges expired refresh tokens.
type TokenWorker struct {
	db          *gorm.DB
	authService services.AuthService
	interval    time.Duration
}

func NewTokenWorker(db *gorm.DB, authService services.AuthService, interval time.Duration) *TokenWorker {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &TokenWorker{db: db, authService: authService, interval: interval}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Token worker stopped")
				return
			case <-ticker.C:
				purged, err := w.authService.PurgeExpiredTokens(w.db)
				if err != nil {
					logger.WorkerLog("tokens", "purge_expired", err)
				} else if purged > 0 {
					logger.WorkerLog("tokens", "purge_expired", nil, "purged", purged)
				}
			}
		}
	}()
}

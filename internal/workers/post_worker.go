package workers

import (
	"context"
	"time"

	"collabex_backend/internal/logger"
	"collabex_backend/internal/services"

	"gorm.io/gorm"
)

type PostWorker struct {
	db          *gorm.DB
	postService services.PostService
	interval    time.Duration
}

func NewPostWorker(db *gorm.DB, postService services.PostService, interval time.Duration) *PostWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PostWorker{db: db, postService: postService, interval: interval}
}

// Start runs the background jobs for collab posts.
func (w *PostWorker) Start(ctx context.Context) {
	go w.autoClosePosts(ctx)
}

// autoClosePosts closes open posts whose deadline has passed.
func (w *PostWorker) autoClosePosts(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Post worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce closes expired posts and returns how many were closed.
func (w *PostWorker) RunOnce() int64 {
	closed, err := w.postService.CloseExpired(w.db)
	if err != nil {
		logger.WorkerLog("posts", "close_expired", err)
		return 0
	}
	if closed > 0 {
		logger.WorkerLog("posts", "close_expired", nil, "closed", closed)
	}
	return closed
}

package workers

import (
	"context"
	"fmt"
	"time"

	"collabex_backend/internal/logger"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const outboxWorkerName = "outbox"

// OutboxHandler delivers one event payload. A 4xx AppError is permanent;
// any other error is retried.
type OutboxHandler func(ctx context.Context, db *gorm.DB, payload []byte) error

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
	// StaleAfter releases events left in processing by a crashed worker.
	StaleAfter time.Duration
}

func DefaultOutboxConfig() OutboxConfig {
	return OutboxConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
		BaseBackoff:  5 * time.Second,
		MaxBackoff:   10 * time.Minute,
		StaleAfter:   5 * time.Minute,
	}
}

type OutboxWorker struct {
	db       *gorm.DB
	repo     repositories.OutboxRepository
	handlers map[string]OutboxHandler
	cfg      OutboxConfig
	now      func() time.Time
}

func NewOutboxWorker(db *gorm.DB, repo repositories.OutboxRepository, cfg OutboxConfig) *OutboxWorker {
	def := DefaultOutboxConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = def.BaseBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = def.StaleAfter
	}

	return &OutboxWorker{
		db:       db,
		repo:     repo,
		handlers: make(map[string]OutboxHandler),
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle registers the handler for an event kind. Call before Start.
func (w *OutboxWorker) Handle(kind string, h OutboxHandler) {
	w.handlers[kind] = h
}

// Start runs the poll loop until ctx is cancelled.
func (w *OutboxWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *OutboxWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	logger.Info("Outbox worker started", "poll_interval", w.cfg.PollInterval, "batch_size", w.cfg.BatchSize)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Outbox worker stopped")
			return
		case <-ticker.C:
			// Drain while full batches keep coming.
			for {
				n, err := w.ProcessBatch(ctx)
				if err != nil {
					logger.WorkerLog(outboxWorkerName, "process_batch", err)
					break
				}
				if n < w.cfg.BatchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// ProcessBatch claims and delivers one batch of due events. It returns the
// number of events claimed.
func (w *OutboxWorker) ProcessBatch(ctx context.Context) (int, error) {
	now := w.now()

	released, err := w.repo.ReleaseStale(w.db, now.Add(-w.cfg.StaleAfter))
	if err != nil {
		return 0, fmt.Errorf("release stale: %w", err)
	}
	if released > 0 {
		logger.WorkerLog(outboxWorkerName, "release_stale", nil, "released", released)
	}

	batch, err := w.repo.ClaimDue(w.db, now, w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim due: %w", err)
	}

	for i := range batch {
		if ctx.Err() != nil {
			// Unprocessed claims go back through ReleaseStale.
			return len(batch), ctx.Err()
		}
		w.deliver(ctx, &batch[i])
	}
	return len(batch), nil
}

func (w *OutboxWorker) deliver(ctx context.Context, event *models.OutboxEvent) {
	attempts := event.Attempts + 1

	handler, ok := w.handlers[event.Kind]
	if !ok {
		w.fail(event, attempts, fmt.Errorf("no handler for kind %q", event.Kind))
		return
	}

	err := handler(ctx, w.db, event.Payload)
	if err == nil {
		if err := w.repo.MarkDone(w.db, event.ID); err != nil {
			logger.WorkerLog(outboxWorkerName, "mark_done", err, "event_id", event.ID)
		}
		return
	}

	if isPermanent(err) || attempts >= w.cfg.MaxAttempts {
		w.fail(event, attempts, err)
		return
	}

	next := w.now().Add(Backoff(w.cfg.BaseBackoff, w.cfg.MaxBackoff, attempts))
	if markErr := w.repo.MarkRetry(w.db, event.ID, attempts, next, err.Error()); markErr != nil {
		logger.WorkerLog(outboxWorkerName, "mark_retry", markErr, "event_id", event.ID)
		return
	}
	logger.WorkerLog(outboxWorkerName, "deliver", err,
		"event_id", event.ID,
		"kind", event.Kind,
		"attempts", attempts,
		"next_attempt_at", next,
	)
}

func (w *OutboxWorker) fail(event *models.OutboxEvent, attempts int, cause error) {
	if err := w.repo.MarkFailed(w.db, event.ID, attempts, cause.Error()); err != nil {
		logger.WorkerLog(outboxWorkerName, "mark_failed", err, "event_id", event.ID)
		return
	}
	logger.Error("Outbox event failed permanently",
		"event_id", event.ID,
		"kind", event.Kind,
		"attempts", attempts,
		"error", cause.Error(),
	)
}

// Backoff is base * 2^(attempts-1), capped at max.
func Backoff(base, max time.Duration, attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := base
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}

func isPermanent(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return ok && appErr.ClientError()
}

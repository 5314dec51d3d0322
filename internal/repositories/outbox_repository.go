package repositories

import (
	"time"
	"unicode/utf8"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutboxRepository interface {
	Enqueue(db *gorm.DB, event *models.OutboxEvent) error
	// ClaimDue moves up to limit due events to processing and returns them.
	ClaimDue(db *gorm.DB, now time.Time, limit int) ([]models.OutboxEvent, error)
	MarkDone(db *gorm.DB, id string) error
	MarkRetry(db *gorm.DB, id string, attempts int, next time.Time, lastErr string) error
	MarkFailed(db *gorm.DB, id string, attempts int, lastErr string) error
	// ReleaseStale returns events stuck in processing since before cutoff to pending.
	ReleaseStale(db *gorm.DB, cutoff time.Time) (int64, error)
}

type OutboxRepositoryImpl struct{}

func NewOutboxRepository() OutboxRepository {
	return &OutboxRepositoryImpl{}
}

func (r *OutboxRepositoryImpl) Enqueue(db *gorm.DB, event *models.OutboxEvent) error {
	if event.Status == "" {
		event.Status = models.OutboxStatusPending
	}
	if event.NextAttemptAt.IsZero() {
		event.NextAttemptAt = time.Now().UTC()
	}
	return db.Create(event).Error
}

func (r *OutboxRepositoryImpl) ClaimDue(db *gorm.DB, now time.Time, limit int) ([]models.OutboxEvent, error) {
	var batch []models.OutboxEvent
	err := db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("status = ? AND next_attempt_at <= ?", models.OutboxStatusPending, now).
			Order("next_attempt_at ASC").
			Limit(limit)
		if supportsSkipLocked(tx) {
			query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}
		if err := query.Find(&batch).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		ids := make([]string, len(batch))
		for i, e := range batch {
			ids[i] = e.ID
		}
		return tx.Model(&models.OutboxEvent{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     models.OutboxStatusProcessing,
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	for i := range batch {
		batch[i].Status = models.OutboxStatusProcessing
	}
	return batch, nil
}

func supportsSkipLocked(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	}
	return false
}

func (r *OutboxRepositoryImpl) MarkDone(db *gorm.DB, id string) error {
	return db.Model(&models.OutboxEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.OutboxStatusDone,
			"last_error": "",
		}).Error
}

func (r *OutboxRepositoryImpl) MarkRetry(db *gorm.DB, id string, attempts int, next time.Time, lastErr string) error {
	return db.Model(&models.OutboxEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          models.OutboxStatusPending,
			"attempts":        attempts,
			"next_attempt_at": next,
			"last_error":      truncate(lastErr, 1000),
		}).Error
}

func (r *OutboxRepositoryImpl) MarkFailed(db *gorm.DB, id string, attempts int, lastErr string) error {
	return db.Model(&models.OutboxEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.OutboxStatusFailed,
			"attempts":   attempts,
			"last_error": truncate(lastErr, 1000),
		}).Error
}

func (r *OutboxRepositoryImpl) ReleaseStale(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&models.OutboxEvent{}).
		Where("status = ? AND updated_at < ?", models.OutboxStatusProcessing, cutoff).
		Update("status", models.OutboxStatusPending)
	return result.RowsAffected, result.Error
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

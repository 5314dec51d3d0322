package services

import (
	"encoding/json"
	"fmt"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// enqueueEvent writes an outbox row on db, which is normally the caller's
// transaction.
func enqueueEvent(db *gorm.DB, repo repositories.OutboxRepository, kind string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", kind, err)
	}
	return repo.Enqueue(db, &models.OutboxEvent{
		Kind:    kind,
		Payload: datatypes.JSON(raw),
	})
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OutboxKindNotification = "notification.dispatch"
	OutboxKindEmail        = "email.notification"
)

type OutboxEvent struct {
	BaseModel
	Kind          string         `gorm:"size:50;not null" json:"kind"`
	Payload       datatypes.JSON `gorm:"not null" json:"payload"`
	Status        OutboxStatus   `gorm:"size:20;not null;default:'pending';index:idx_outbox_due" json:"status"`
	Attempts      int            `gorm:"not null;default:0" json:"attempts"`
	NextAttemptAt time.Time      `gorm:"not null;index:idx_outbox_due" json:"next_attempt_at"`
	LastError     string         `gorm:"size:1000" json:"last_error"`
}

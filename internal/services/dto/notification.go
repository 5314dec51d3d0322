package dto

import (
	"encoding/json"
	"time"

	"collabex_backend/internal/models"
)

// SendNotificationRequest is the body of POST /functions/send-notification.
type SendNotificationRequest struct {
	RecipientUserID string                  `json:"recipientUserId"`
	Type            models.NotificationType `json:"type"`
	Title           string                  `json:"title"`
	Message         string                  `json:"message"`
	SenderName      string                  `json:"senderName"`
	Data            json.RawMessage         `json:"data,omitempty"`
}

type SendNotificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NotificationDispatch is the outbox payload of a deferred dispatch.
type NotificationDispatch struct {
	SenderUserID string `json:"senderUserId"`
	SendNotificationRequest
}

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Data      json.RawMessage         `json:"data"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	UnreadCount   int64                   `json:"unread_count"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	data := json.RawMessage(n.Data)
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      data,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

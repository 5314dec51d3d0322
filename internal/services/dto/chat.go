package dto

import "time"

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
	Content    string `json:"content" binding:"required,min=1,max=5000"`
}

type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatPartnerResponse is a matched profile with its conversation state.
type ChatPartnerResponse struct {
	Partner     *ProfileSummary  `json:"partner"`
	LastMessage *MessageResponse `json:"last_message,omitempty"`
	UnreadCount int64            `json:"unread_count"`
}

package repositories

import (
	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, msg *models.Message) error
	ListConversation(db *gorm.DB, a, b string, limit int) ([]models.Message, error)
	MarkConversationRead(db *gorm.DB, receiverID, senderID string) (int64, error)
	CountUnread(db *gorm.DB, receiverID string) (int64, error)
	CountUnreadFrom(db *gorm.DB, receiverID, senderID string) (int64, error)
	// LastBetween returns nil when the pair never exchanged messages.
	LastBetween(db *gorm.DB, a, b string) (*models.Message, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func conversationScope(a, b string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))", a, b, b, a)
	}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, msg *models.Message) error {
	return db.Create(msg).Error
}

// ListConversation returns the newest limit messages between a and b in
// chronological order.
func (r *MessageRepositoryImpl) ListConversation(db *gorm.DB, a, b string, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	var messages []models.Message
	err := db.Scopes(conversationScope(a, b)).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *MessageRepositoryImpl) MarkConversationRead(db *gorm.DB, receiverID, senderID string) (int64, error) {
	result := db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) CountUnread(db *gorm.DB, receiverID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) CountUnreadFrom(db *gorm.DB, receiverID, senderID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) LastBetween(db *gorm.DB, a, b string) (*models.Message, error) {
	var messages []models.Message
	err := db.Scopes(conversationScope(a, b)).
		Order("created_at DESC").
		Limit(1).
		Find(&messages).Error
	if err != nil || len(messages) == 0 {
		return nil, err
	}
	return &messages[0], nil
}

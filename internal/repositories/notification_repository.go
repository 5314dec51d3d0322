package repositories

import (
	"errors"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationCriteria struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit"`
}

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)
	ListByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, id, userID string) error
	MarkAllRead(db *gorm.DB, userID string) (int64, error)
	Delete(db *gorm.DB, id, userID string) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	var n models.Notification
	if err := db.Where("id = ?", id).First(&n).Error; err != nil {
		return nil, notFoundAs(err, ErrNotificationNotFound)
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) ListByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, error) {
	limit := criteria.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := db.Where("user_id = ?", userID)
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

// MarkRead only touches rows owned by userID.
func (r *NotificationRepositoryImpl) MarkRead(db *gorm.DB, id, userID string) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

package repositories

import (
	"errors"
	"time"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPlatformNotFound = errors.New("social platform not found")

type SocialPlatformRepository interface {
	Create(db *gorm.DB, platform *models.SocialPlatform) error
	FindByID(db *gorm.DB, id string) (*models.SocialPlatform, error)
	ListByProfile(db *gorm.DB, profileID string) ([]models.SocialPlatform, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	MarkVerified(db *gorm.DB, id string, at time.Time) error
	Delete(db *gorm.DB, id string) error
}

type SocialPlatformRepositoryImpl struct{}

func NewSocialPlatformRepository() SocialPlatformRepository {
	return &SocialPlatformRepositoryImpl{}
}

func (r *SocialPlatformRepositoryImpl) Create(db *gorm.DB, platform *models.SocialPlatform) error {
	return db.Create(platform).Error
}

func (r *SocialPlatformRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.SocialPlatform, error) {
	var platform models.SocialPlatform
	if err := db.Where("id = ?", id).First(&platform).Error; err != nil {
		return nil, notFoundAs(err, ErrPlatformNotFound)
	}
	return &platform, nil
}

func (r *SocialPlatformRepositoryImpl) ListByProfile(db *gorm.DB, profileID string) ([]models.SocialPlatform, error) {
	var platforms []models.SocialPlatform
	err := db.Where("profile_id = ?", profileID).Order("created_at ASC").Find(&platforms).Error
	return platforms, err
}

func (r *SocialPlatformRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	result := db.Model(&models.SocialPlatform{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlatformNotFound
	}
	return nil
}

func (r *SocialPlatformRepositoryImpl) MarkVerified(db *gorm.DB, id string, at time.Time) error {
	return r.Update(db, id, map[string]interface{}{
		"is_verified": true,
		"verified_at": at,
	})
}

func (r *SocialPlatformRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.SocialPlatform{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlatformNotFound
	}
	return nil
}

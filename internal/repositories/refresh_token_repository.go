package repositories

import (
	"errors"
	"time"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error
	FindByToken(db *gorm.DB, token string) (*models.RefreshToken, error)
	DeleteByToken(db *gorm.DB, token string) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type RefreshTokenRepositoryImpl struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{}
}

func (r *RefreshTokenRepositoryImpl) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *RefreshTokenRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := db.Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, notFoundAs(err, ErrRefreshTokenNotFound)
	}
	return &rt, nil
}

func (r *RefreshTokenRepositoryImpl) DeleteByToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *RefreshTokenRepositoryImpl) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at <= ?", now).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

package repositories

import (
	"errors"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

type PortfolioRepository interface {
	Create(db *gorm.DB, item *models.PortfolioItem) error
	FindByID(db *gorm.DB, id string) (*models.PortfolioItem, error)
	ListByProfile(db *gorm.DB, profileID string) ([]models.PortfolioItem, error)
	NextSortOrder(db *gorm.DB, profileID string) (int, error)
	UpdateCaption(db *gorm.DB, id, caption string) error
	Delete(db *gorm.DB, id string) error
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, item *models.PortfolioItem) error {
	return db.Create(item).Error
}

func (r *PortfolioRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := db.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundAs(err, ErrPortfolioItemNotFound)
	}
	return &item, nil
}

func (r *PortfolioRepositoryImpl) ListByProfile(db *gorm.DB, profileID string) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("profile_id = ?", profileID).Order("sort_order ASC, created_at ASC").Find(&items).Error
	return items, err
}

func (r *PortfolioRepositoryImpl) NextSortOrder(db *gorm.DB, profileID string) (int, error) {
	var maxOrder *int
	err := db.Model(&models.PortfolioItem{}).
		Where("profile_id = ?", profileID).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 0, nil
	}
	return *maxOrder + 1, nil
}

func (r *PortfolioRepositoryImpl) UpdateCaption(db *gorm.DB, id, caption string) error {
	return db.Model(&models.PortfolioItem{}).Where("id = ?", id).Update("caption", caption).Error
}

func (r *PortfolioRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.PortfolioItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}

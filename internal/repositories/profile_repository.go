package repositories

import (
	"errors"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// DiscoverCriteria filters the discover feed.
type DiscoverCriteria struct {
	AccountType models.AccountType `form:"account_type"`
	Niche       string             `form:"niche"`
	Location    string             `form:"location"`
	Limit       int                `form:"limit"`
}

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	FindWithDetails(db *gorm.DB, id string) (*models.Profile, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Profile, error)
	Update(db *gorm.DB, profileID string, updates map[string]interface{}) error
	ReplaceNiches(db *gorm.DB, profileID string, niches []string) error

	Discover(db *gorm.DB, viewerID string, criteria DiscoverCriteria) ([]models.Profile, error)
	FindCandidates(db *gorm.DB, viewerID string, limit int) ([]models.Profile, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, notFoundAs(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFoundAs(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindWithDetails(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	err := db.
		Preload("Niches").
		Preload("Platforms", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, created_at ASC") }).
		Where("id = ?", id).
		First(&profile).Error
	if err != nil {
		return nil, notFoundAs(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Profile, error) {
	var profiles []models.Profile
	if len(ids) == 0 {
		return profiles, nil
	}
	err := db.Where("id IN ?", ids).Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profileID string, updates map[string]interface{}) error {
	result := db.Model(&models.Profile{}).Where("id = ?", profileID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) ReplaceNiches(db *gorm.DB, profileID string, niches []string) error {
	if err := db.Where("profile_id = ?", profileID).Delete(&models.ProfileNiche{}).Error; err != nil {
		return err
	}
	if len(niches) == 0 {
		return nil
	}

	rows := make([]models.ProfileNiche, 0, len(niches))
	for _, n := range niches {
		rows = append(rows, models.ProfileNiche{ProfileID: profileID, Niche: n})
	}
	return db.Create(&rows).Error
}

// Discover lists onboarded profiles other than the viewer, newest first.
func (r *ProfileRepositoryImpl) Discover(db *gorm.DB, viewerID string, criteria DiscoverCriteria) ([]models.Profile, error) {
	limit := criteria.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	query := db.Model(&models.Profile{}).
		Preload("Niches").
		Preload("Platforms").
		Where("onboarding_completed = ?", true).
		Where("id <> ?", viewerID)

	if criteria.AccountType != "" {
		query = query.Where("account_type = ?", criteria.AccountType)
	}
	if criteria.Location != "" {
		query = query.Where("LOWER(location) = LOWER(?)", criteria.Location)
	}
	if criteria.Niche != "" {
		query = query.Where("id IN (?)",
			db.Model(&models.ProfileNiche{}).Select("profile_id").Where("niche = ?", criteria.Niche))
	}

	var profiles []models.Profile
	err := query.Order("created_at DESC").Limit(limit).Find(&profiles).Error
	return profiles, err
}

// FindCandidates lists onboarded profiles the viewer has not swiped on yet.
func (r *ProfileRepositoryImpl) FindCandidates(db *gorm.DB, viewerID string, limit int) ([]models.Profile, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	swiped := db.Model(&models.SwipeAction{}).Select("swiped_id").Where("swiper_id = ?", viewerID)

	var profiles []models.Profile
	err := db.Model(&models.Profile{}).
		Preload("Niches").
		Preload("Platforms").
		Where("onboarding_completed = ?", true).
		Where("id <> ?", viewerID).
		Where("id NOT IN (?)", swiped).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

package repositories

import (
	"errors"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCollaborationNotFound = errors.New("collaboration not found")
	// ErrStatusChanged means the row left the expected status concurrently.
	ErrStatusChanged = errors.New("collaboration status changed concurrently")
)

type CollaborationCriteria struct {
	Status models.CollaborationStatus `form:"status" binding:"omitempty,collab_status"`
	Limit  int                        `form:"limit"`
}

type CollaborationRepository interface {
	Create(db *gorm.DB, collab *models.Collaboration) error
	FindByID(db *gorm.DB, id string) (*models.Collaboration, error)
	// UpdateStatus writes status and completed_at in one statement, only if
	// the row is still in status from.
	UpdateStatus(db *gorm.DB, collab *models.Collaboration, from models.CollaborationStatus) error
	ListByProfile(db *gorm.DB, profileID string, criteria CollaborationCriteria) ([]models.Collaboration, error)
	HasActiveBetween(db *gorm.DB, a, b string) (bool, error)
	FindCompletedBetween(db *gorm.DB, a, b string) (*models.Collaboration, error)
}

type CollaborationRepositoryImpl struct{}

func NewCollaborationRepository() CollaborationRepository {
	return &CollaborationRepositoryImpl{}
}

func pairScope(a, b string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("((profile_a = ? AND profile_b = ?) OR (profile_a = ? AND profile_b = ?))", a, b, b, a)
	}
}

func (r *CollaborationRepositoryImpl) Create(db *gorm.DB, collab *models.Collaboration) error {
	return db.Create(collab).Error
}

func (r *CollaborationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Collaboration, error) {
	var collab models.Collaboration
	err := db.Preload("Requester").Preload("Recipient").Where("id = ?", id).First(&collab).Error
	if err != nil {
		return nil, notFoundAs(err, ErrCollaborationNotFound)
	}
	return &collab, nil
}

func (r *CollaborationRepositoryImpl) UpdateStatus(db *gorm.DB, collab *models.Collaboration, from models.CollaborationStatus) error {
	result := db.Model(&models.Collaboration{}).
		Where("id = ? AND status = ?", collab.ID, from).
		Updates(map[string]interface{}{
			"status":       collab.Status,
			"completed_at": collab.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *CollaborationRepositoryImpl) ListByProfile(db *gorm.DB, profileID string, criteria CollaborationCriteria) ([]models.Collaboration, error) {
	limit := criteria.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := db.Preload("Requester").Preload("Recipient").
		Where("(profile_a = ? OR profile_b = ?)", profileID, profileID)
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var collabs []models.Collaboration
	err := query.Order("created_at DESC").Limit(limit).Find(&collabs).Error
	return collabs, err
}

func (r *CollaborationRepositoryImpl) HasActiveBetween(db *gorm.DB, a, b string) (bool, error) {
	var count int64
	err := db.Model(&models.Collaboration{}).
		Scopes(pairScope(a, b)).
		Where("status IN ?", []models.CollaborationStatus{
			models.CollaborationStatusPending,
			models.CollaborationStatusInProgress,
		}).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *CollaborationRepositoryImpl) FindCompletedBetween(db *gorm.DB, a, b string) (*models.Collaboration, error) {
	var collab models.Collaboration
	err := db.Scopes(pairScope(a, b)).
		Where("status = ?", models.CollaborationStatusCompleted).
		Order("completed_at DESC").
		First(&collab).Error
	if err != nil {
		return nil, notFoundAs(err, ErrCollaborationNotFound)
	}
	return &collab, nil
}

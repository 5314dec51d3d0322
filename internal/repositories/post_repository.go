package repositories

import (
	"errors"
	"time"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound        = errors.New("collab post not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("application already exists")
)

type PostCriteria struct {
	Niche    string `form:"niche"`
	AuthorID string `form:"author_id"`
	Limit    int    `form:"limit"`
}

type PostRepository interface {
	CreatePost(db *gorm.DB, post *models.CollabPost) error
	FindPostByID(db *gorm.DB, id string) (*models.CollabPost, error)
	ListOpenPosts(db *gorm.DB, criteria PostCriteria) ([]models.CollabPost, error)
	ListByAuthor(db *gorm.DB, authorID string) ([]models.CollabPost, error)
	UpdatePost(db *gorm.DB, id string, updates map[string]interface{}) error
	CloseExpiredPosts(db *gorm.DB, now time.Time) (int64, error)

	CreateApplication(db *gorm.DB, app *models.CollabApplication) error
	FindApplicationByID(db *gorm.DB, id string) (*models.CollabApplication, error)
	ListApplicationsByPost(db *gorm.DB, postID string) ([]models.CollabApplication, error)
	ListApplicationsByApplicant(db *gorm.DB, applicantID string) ([]models.CollabApplication, error)
	UpdateApplicationStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
}

type PostRepositoryImpl struct{}

func NewPostRepository() PostRepository {
	return &PostRepositoryImpl{}
}

// ============================================================================
// Posts
// ============================================================================

func (r *PostRepositoryImpl) CreatePost(db *gorm.DB, post *models.CollabPost) error {
	return db.Create(post).Error
}

func (r *PostRepositoryImpl) FindPostByID(db *gorm.DB, id string) (*models.CollabPost, error) {
	var post models.CollabPost
	if err := db.Preload("Author").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) ListOpenPosts(db *gorm.DB, criteria PostCriteria) ([]models.CollabPost, error) {
	limit := criteria.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	query := db.Preload("Author").Where("status = ?", models.PostStatusOpen)
	if criteria.Niche != "" {
		query = query.Where("niche = ?", criteria.Niche)
	}
	if criteria.AuthorID != "" {
		query = query.Where("author_id = ?", criteria.AuthorID)
	}

	var posts []models.CollabPost
	err := query.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostRepositoryImpl) ListByAuthor(db *gorm.DB, authorID string) ([]models.CollabPost, error) {
	var posts []models.CollabPost
	err := db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepositoryImpl) UpdatePost(db *gorm.DB, id string, updates map[string]interface{}) error {
	result := db.Model(&models.CollabPost{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// CloseExpiredPosts closes open posts whose deadline has passed.
func (r *PostRepositoryImpl) CloseExpiredPosts(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.CollabPost{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.PostStatusOpen, now).
		Updates(map[string]interface{}{
			"status":     models.PostStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// ============================================================================
// Applications
// ============================================================================

func (r *PostRepositoryImpl) CreateApplication(db *gorm.DB, app *models.CollabApplication) error {
	if err := db.Create(app).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *PostRepositoryImpl) FindApplicationByID(db *gorm.DB, id string) (*models.CollabApplication, error) {
	var app models.CollabApplication
	if err := db.Preload("Post").Where("id = ?", id).First(&app).Error; err != nil {
		return nil, notFoundAs(err, ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *PostRepositoryImpl) ListApplicationsByPost(db *gorm.DB, postID string) ([]models.CollabApplication, error) {
	var apps []models.CollabApplication
	err := db.Preload("Applicant").Where("post_id = ?", postID).Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *PostRepositoryImpl) ListApplicationsByApplicant(db *gorm.DB, applicantID string) ([]models.CollabApplication, error) {
	var apps []models.CollabApplication
	err := db.Preload("Post").Where("applicant_id = ?", applicantID).Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *PostRepositoryImpl) UpdateApplicationStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.CollabApplication{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

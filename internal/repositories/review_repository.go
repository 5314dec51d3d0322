package repositories

import (
	"errors"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this profile")
)

// RatingSummary aggregates the reviews a profile received.
type RatingSummary struct {
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int64         `json:"total_reviews"`
	RatingCounts  map[int]int64 `json:"rating_counts"`
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByPair(db *gorm.DB, reviewerID, revieweeID string) (*models.Review, error)
	ListByReviewee(db *gorm.DB, revieweeID string, limit int) ([]models.Review, error)
	Summary(db *gorm.DB, revieweeID string) (*RatingSummary, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByPair(db *gorm.DB, reviewerID, revieweeID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("reviewer_id = ? AND reviewee_id = ?", reviewerID, revieweeID).First(&review).Error
	if err != nil {
		return nil, notFoundAs(err, ErrReviewNotFound)
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ListByReviewee(db *gorm.DB, revieweeID string, limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var reviews []models.Review
	err := db.Preload("Reviewer").
		Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) Summary(db *gorm.DB, revieweeID string) (*RatingSummary, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := db.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("reviewee_id = ?", revieweeID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{RatingCounts: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var total int64
	for _, row := range rows {
		summary.RatingCounts[row.Rating] = row.Count
		summary.TotalReviews += row.Count
		total += int64(row.Rating) * row.Count
	}
	if summary.TotalReviews > 0 {
		summary.AverageRating = float64(total) / float64(summary.TotalReviews)
	}
	return summary, nil
}

package repositories

import (
	"errors"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSwipeNotFound = errors.New("swipe not found")
	ErrAlreadySwiped = errors.New("swipe already recorded")
	ErrMatchNotFound = errors.New("match not found")
)

type MatchRepository interface {
	CreateSwipe(db *gorm.DB, swipe *models.SwipeAction) error
	FindSwipe(db *gorm.DB, swiperID, swipedID string) (*models.SwipeAction, error)
	// CreateMatch is a no-op when the pair is already matched.
	CreateMatch(db *gorm.DB, a, b string) (*models.Match, error)
	FindMatch(db *gorm.DB, a, b string) (*models.Match, error)
	ListMatches(db *gorm.DB, profileID string) ([]models.Match, error)
}

type MatchRepositoryImpl struct{}

func NewMatchRepository() MatchRepository {
	return &MatchRepositoryImpl{}
}

func (r *MatchRepositoryImpl) CreateSwipe(db *gorm.DB, swipe *models.SwipeAction) error {
	if err := db.Create(swipe).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrAlreadySwiped
		}
		return err
	}
	return nil
}

func (r *MatchRepositoryImpl) FindSwipe(db *gorm.DB, swiperID, swipedID string) (*models.SwipeAction, error) {
	var swipe models.SwipeAction
	err := db.Where("swiper_id = ? AND swiped_id = ?", swiperID, swipedID).First(&swipe).Error
	if err != nil {
		return nil, notFoundAs(err, ErrSwipeNotFound)
	}
	return &swipe, nil
}

func (r *MatchRepositoryImpl) CreateMatch(db *gorm.DB, a, b string) (*models.Match, error) {
	if existing, err := r.FindMatch(db, a, b); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrMatchNotFound) {
		return nil, err
	}

	first, second := models.OrderedPair(a, b)
	match := &models.Match{ProfileA: first, ProfileB: second}
	if err := db.Create(match).Error; err != nil {
		if isDuplicateKey(err) {
			return r.FindMatch(db, a, b)
		}
		return nil, err
	}
	return match, nil
}

func (r *MatchRepositoryImpl) FindMatch(db *gorm.DB, a, b string) (*models.Match, error) {
	var match models.Match
	err := db.Scopes(pairScope(a, b)).First(&match).Error
	if err != nil {
		return nil, notFoundAs(err, ErrMatchNotFound)
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) ListMatches(db *gorm.DB, profileID string) ([]models.Match, error) {
	var matches []models.Match
	err := db.Where("(profile_a = ? OR profile_b = ?)", profileID, profileID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

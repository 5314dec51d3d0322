package repositories

import (
	"errors"
	"strings"
	"time"

	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UpdateLastLogin(db *gorm.DB, userID string, at time.Time) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateLastLogin(db *gorm.DB, userID string, at time.Time) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

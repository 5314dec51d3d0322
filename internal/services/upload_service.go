package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/imageprocessor"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/storage"
	"collabex_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================
// UPLOAD SERVICE
// ============================================

type UploadService interface {
	UploadAvatar(ctx context.Context, db *gorm.DB, session auth.Session, file *dto.UploadFile) (*dto.MediaResponse, error)
	UploadBanner(ctx context.Context, db *gorm.DB, session auth.Session, file *dto.UploadFile) (*dto.MediaResponse, error)
	RemoveBanner(ctx context.Context, db *gorm.DB, session auth.Session) error
	AddPortfolioItem(ctx context.Context, db *gorm.DB, session auth.Session, file *dto.UploadFile, caption string) (*dto.PortfolioItemResponse, error)
}

// ============================================
// CONFIG
// ============================================

type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes []string
	ImageQuality int
}

func GetDefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:  10 * 1024 * 1024,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		ImageQuality: 85,
	}
}

// mediaTarget describes where one kind of profile image lives.
type mediaTarget struct {
	bucket string
	name   string
	column string
	size   imageprocessor.ImageSize
}

var (
	avatarTarget = mediaTarget{bucket: storage.BucketAvatars, name: "avatar", column: "avatar_url", size: imageprocessor.SizeAvatar}
	bannerTarget = mediaTarget{bucket: storage.BucketPortfolio, name: "banner", column: "banner_url", size: imageprocessor.SizeBanner}
)

type UploadServiceImpl struct {
	profileRepo   repositories.ProfileRepository
	portfolioRepo repositories.PortfolioRepository
	storage       storage.Storage
	processor     *imageprocessor.Processor
	config        *UploadConfig
	now           func() time.Time
}

func NewUploadService(
	profileRepo repositories.ProfileRepository,
	portfolioRepo repositories.PortfolioRepository,
	store storage.Storage,
	config *UploadConfig,
) UploadService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}

	return &UploadServiceImpl{
		profileRepo:   profileRepo,
		portfolioRepo: portfolioRepo,
		storage:       store,
		processor:     imageprocessor.NewProcessor(config.ImageQuality),
		config:        config,
		now:           time.Now,
	}
}

// ============================================
// PROFILE IMAGES
// ============================================

func (s *UploadServiceImpl) UploadAvatar(ctx context.Context, db *gorm.DB, session auth.Session, file *dto.UploadFile) (*dto.MediaResponse, error) {
	return s.replaceProfileImage(ctx, db, session, file, avatarTarget)
}

func (s *UploadServiceImpl) UploadBanner(ctx context.Context, db *gorm.DB, session auth.Session, file *dto.UploadFile) (*dto.MediaResponse, error) {
	return s.replaceProfileImage(ctx, db, session, file, bannerTarget)
}

// RemoveBanner clears banner_url. The stored object goes after the commit.
func (s *UploadServiceImpl) RemoveBanner(ctx context.Context, db *gorm.DB, session auth.Session) error {
	profile, err := s.profileRepo.FindByID(db, session.ProfileID)
	if err != nil {
		return handleUploadError(err)
	}
	if profile.BannerURL == "" {
		return nil
	}

	if err := s.profileRepo.Update(db, profile.ID, map[string]interface{}{"banner_url": ""}); err != nil {
		return handleUploadError(err)
	}

	if objectPath, ok := objectPathFromURL(bannerTarget.bucket, session.UserID, profile.BannerURL); ok {
		if err := s.storage.Delete(ctx, objectPath); err != nil {
			logger.CtxWarn(ctx, "failed to delete banner object", "path", objectPath, "error", err)
		}
	}
	return nil
}

// replaceProfileImage stores the processed image under a fixed per-owner key
// so a new upload overwrites the previous one, then points the profile at it.
// The ?t= suffix busts caches that hold the old object.
func (s *UploadServiceImpl) replaceProfileImage(ctx context.Context, db *gorm.DB, session auth.Session, file *dto.UploadFile, target mediaTarget) (*dto.MediaResponse, error) {
	profile, err := s.profileRepo.FindByID(db, session.ProfileID)
	if err != nil {
		return nil, handleUploadError(err)
	}

	processed, err := s.processImage(file, target.size)
	if err != nil {
		return nil, err
	}

	objectPath, err := storage.ObjectPath(target.bucket, storage.ObjectKey(session.UserID, target.name, processed.Ext()))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.storage.Save(ctx, objectPath, processed.Data, processed.ContentType); err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage")
	}

	url, err := s.storage.GetURL(ctx, objectPath)
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage")
	}
	url = fmt.Sprintf("%s?t=%d", url, s.now().Unix())

	if err := s.profileRepo.Update(db, profile.ID, map[string]interface{}{target.column: url}); err != nil {
		return nil, handleUploadError(err)
	}

	// A format change leaves the old extension behind.
	previous := profile.AvatarURL
	if target.column == bannerTarget.column {
		previous = profile.BannerURL
	}
	if oldPath, ok := objectPathFromURL(target.bucket, session.UserID, previous); ok && oldPath != objectPath {
		if err := s.storage.Delete(ctx, oldPath); err != nil {
			logger.CtxWarn(ctx, "failed to delete replaced image", "path", oldPath, "error", err)
		}
	}

	logger.CtxInfo(ctx, "profile image updated", "profile_id", profile.ID, "kind", target.name)
	return &dto.MediaResponse{URL: url}, nil
}

// ============================================
// PORTFOLIO
// ============================================

// AddPortfolioItem stores the image under {owner}/portfolio-{id} and appends
// the item at the end of the profile's portfolio.
func (s *UploadServiceImpl) AddPortfolioItem(ctx context.Context, db *gorm.DB, session auth.Session, file *dto.UploadFile, caption string) (*dto.PortfolioItemResponse, error) {
	caption = strings.TrimSpace(caption)
	if len([]rune(caption)) > 500 {
		return nil, apperrors.NewBadRequestError("Caption must be at most 500 characters")
	}

	processed, err := s.processImage(file, imageprocessor.SizePortfolio)
	if err != nil {
		return nil, err
	}

	item := &models.PortfolioItem{ProfileID: session.ProfileID, Caption: caption}
	item.ID = uuid.NewString()

	objectPath, err := storage.ObjectPath(storage.BucketPortfolio,
		storage.ObjectKey(session.UserID, "portfolio-"+item.ID, processed.Ext()))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.storage.Save(ctx, objectPath, processed.Data, processed.ContentType); err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage")
	}
	if item.ImageURL, err = s.storage.GetURL(ctx, objectPath); err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.profileRepo.FindByID(tx, session.ProfileID); err != nil {
		s.discard(ctx, objectPath)
		return nil, handleUploadError(err)
	}
	if item.SortOrder, err = s.portfolioRepo.NextSortOrder(tx, session.ProfileID); err != nil {
		s.discard(ctx, objectPath)
		return nil, apperrors.InternalError(err)
	}
	if err := s.portfolioRepo.Create(tx, item); err != nil {
		s.discard(ctx, objectPath)
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.discard(ctx, objectPath)
		return nil, apperrors.InternalError(err)
	}

	return dto.NewPortfolioItemResponse(item), nil
}

// ============================================
// HELPERS
// ============================================

// processImage enforces the size limit, sniffs the real content type and
// re-encodes the image into the target box.
func (s *UploadServiceImpl) processImage(file *dto.UploadFile, size imageprocessor.ImageSize) (*imageprocessor.Result, error) {
	if file == nil || file.Reader == nil {
		return nil, apperrors.NewBadRequestError("File is required")
	}
	if file.Size > s.config.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file.Reader, s.config.MaxFileSize+1))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Failed to read uploaded file")
	}
	if int64(len(data)) > s.config.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, apperrors.NewBadRequestError("File is empty")
	}

	detected := mimetype.Detect(data)
	if !s.isAllowedType(detected) {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"detected": detected.String()})
	}

	result, err := s.processor.ProcessImage(bytes.NewReader(data), size)
	if err != nil {
		return nil, apperrors.ErrInvalidFileType.WithError(err)
	}
	return result, nil
}

func (s *UploadServiceImpl) isAllowedType(detected *mimetype.MIME) bool {
	for _, allowed := range s.config.AllowedTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}

func (s *UploadServiceImpl) discard(ctx context.Context, objectPath string) {
	if err := s.storage.Delete(ctx, objectPath); err != nil {
		logger.CtxError(ctx, "failed to roll back stored object", "path", objectPath, "error", err)
	}
}

// objectPathFromURL recovers the storage path of an image this service
// produced for ownerID. URLs from anywhere else are left alone.
func objectPathFromURL(bucket, ownerID, rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	rawURL, _, _ = strings.Cut(rawURL, "?")
	marker := "/" + bucket + "/" + ownerID + "/"
	idx := strings.LastIndex(rawURL, marker)
	if idx < 0 {
		return "", false
	}
	objectPath := strings.TrimPrefix(rawURL[idx:], "/")
	if path.Clean(objectPath) != objectPath {
		return "", false
	}
	return objectPath, true
}

func handleUploadError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrPortfolioItemNotFound):
		return apperrors.ErrPortfolioItemNotFound
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}

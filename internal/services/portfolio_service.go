package services

import (
	"context"
	"errors"
	"strings"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/storage"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PortfolioService interface {
	List(db *gorm.DB, profileID string) ([]*dto.PortfolioItemResponse, error)
	UpdateCaption(db *gorm.DB, session auth.Session, itemID string, req *dto.UpdatePortfolioItemRequest) (*dto.PortfolioItemResponse, error)
	Delete(ctx context.Context, db *gorm.DB, session auth.Session, itemID string) error
}

type PortfolioServiceImpl struct {
	portfolioRepo repositories.PortfolioRepository
	storage       storage.Storage
}

func NewPortfolioService(portfolioRepo repositories.PortfolioRepository, store storage.Storage) PortfolioService {
	return &PortfolioServiceImpl{
		portfolioRepo: portfolioRepo,
		storage:       store,
	}
}

func (s *PortfolioServiceImpl) List(db *gorm.DB, profileID string) ([]*dto.PortfolioItemResponse, error) {
	items, err := s.portfolioRepo.ListByProfile(db, profileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.PortfolioItemResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewPortfolioItemResponse(&items[i]))
	}
	return out, nil
}

func (s *PortfolioServiceImpl) UpdateCaption(db *gorm.DB, session auth.Session, itemID string, req *dto.UpdatePortfolioItemRequest) (*dto.PortfolioItemResponse, error) {
	item, err := s.portfolioRepo.FindByID(db, itemID)
	if err != nil {
		return nil, handlePortfolioError(err)
	}
	if item.ProfileID != session.ProfileID {
		return nil, apperrors.NewForbiddenError("You can only edit your own portfolio")
	}

	item.Caption = strings.TrimSpace(req.Caption)
	if err := s.portfolioRepo.UpdateCaption(db, item.ID, item.Caption); err != nil {
		return nil, handlePortfolioError(err)
	}
	return dto.NewPortfolioItemResponse(item), nil
}

// Delete removes the row first; the image object is best effort afterwards.
func (s *PortfolioServiceImpl) Delete(ctx context.Context, db *gorm.DB, session auth.Session, itemID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	item, err := s.portfolioRepo.FindByID(tx, itemID)
	if err != nil {
		return handlePortfolioError(err)
	}
	if item.ProfileID != session.ProfileID {
		return apperrors.NewForbiddenError("You can only edit your own portfolio")
	}
	if err := s.portfolioRepo.Delete(tx, item.ID); err != nil {
		return handlePortfolioError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	if objectPath, ok := objectPathFromURL(storage.BucketPortfolio, session.UserID, item.ImageURL); ok {
		if err := s.storage.Delete(ctx, objectPath); err != nil {
			logger.CtxWarn(ctx, "failed to delete portfolio object", "path", objectPath, "error", err)
		}
	}
	return nil
}

func handlePortfolioError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPortfolioItemNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrPortfolioItemNotFound
	}
	return apperrors.InternalError(err)
}

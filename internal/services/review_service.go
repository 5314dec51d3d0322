package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// Create requires a completed collaboration between the pair. A
	// reviewer reviews a given profile at most once.
	Create(db *gorm.DB, session auth.Session, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListForProfile(db *gorm.DB, profileID string, limit int) (*dto.ReviewListResponse, error)
	Summary(db *gorm.DB, profileID string) (*repositories.RatingSummary, error)
	CanReview(db *gorm.DB, session auth.Session, revieweeID string) (*dto.CanReviewResponse, error)
}

type ReviewServiceImpl struct {
	reviewRepo  repositories.ReviewRepository
	collabRepo  repositories.CollaborationRepository
	profileRepo repositories.ProfileRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	collabRepo repositories.CollaborationRepository,
	profileRepo repositories.ProfileRepository,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		collabRepo:  collabRepo,
		profileRepo: profileRepo,
	}
}

func (s *ReviewServiceImpl) Create(db *gorm.DB, session auth.Session, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewBadRequestError("Rating must be between 1 and 5")
	}
	content := strings.TrimSpace(req.Content)
	if utf8.RuneCountInString(content) > 2000 {
		return nil, apperrors.NewBadRequestError("Review must be at most 2000 characters")
	}
	if req.RevieweeID == session.ProfileID {
		return nil, apperrors.ErrCannotTargetSelf
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.profileRepo.FindByID(tx, req.RevieweeID); err != nil {
		return nil, handleReviewError(err)
	}

	collab, err := s.collabRepo.FindCompletedBetween(tx, session.ProfileID, req.RevieweeID)
	if err != nil {
		return nil, handleReviewError(err)
	}

	if _, err := s.reviewRepo.FindByPair(tx, session.ProfileID, req.RevieweeID); err == nil {
		return nil, apperrors.ErrAlreadyReviewed
	} else if !errors.Is(err, repositories.ErrReviewNotFound) {
		return nil, apperrors.InternalError(err)
	}

	review := &models.Review{
		ReviewerID:      session.ProfileID,
		RevieweeID:      req.RevieweeID,
		CollaborationID: &collab.ID,
		Rating:          req.Rating,
		Content:         content,
	}
	// The unique index decides races between two concurrent submissions.
	if err := s.reviewRepo.Create(tx, review); err != nil {
		return nil, handleReviewError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleReviewError(err)
	}
	return newReviewResponse(review), nil
}

func (s *ReviewServiceImpl) ListForProfile(db *gorm.DB, profileID string, limit int) (*dto.ReviewListResponse, error) {
	reviews, err := s.reviewRepo.ListByReviewee(db, profileID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	summary, err := s.Summary(db, profileID)
	if err != nil {
		return nil, err
	}

	out := &dto.ReviewListResponse{
		Reviews: make([]*dto.ReviewResponse, 0, len(reviews)),
		Summary: summary,
	}
	for i := range reviews {
		out.Reviews = append(out.Reviews, newReviewResponse(&reviews[i]))
	}
	return out, nil
}

func (s *ReviewServiceImpl) Summary(db *gorm.DB, profileID string) (*repositories.RatingSummary, error) {
	summary, err := s.reviewRepo.Summary(db, profileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return summary, nil
}

func (s *ReviewServiceImpl) CanReview(db *gorm.DB, session auth.Session, revieweeID string) (*dto.CanReviewResponse, error) {
	resp := &dto.CanReviewResponse{}
	if revieweeID == session.ProfileID {
		return resp, nil
	}

	if _, err := s.reviewRepo.FindByPair(db, session.ProfileID, revieweeID); err == nil {
		resp.AlreadyReviewed = true
		return resp, nil
	} else if !errors.Is(err, repositories.ErrReviewNotFound) {
		return nil, apperrors.InternalError(err)
	}

	collab, err := s.collabRepo.FindCompletedBetween(db, session.ProfileID, revieweeID)
	switch {
	case err == nil:
		resp.CanReview = true
		resp.CollaborationID = &collab.ID
	case !errors.Is(err, repositories.ErrCollaborationNotFound):
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}

func newReviewResponse(r *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:              r.ID,
		ReviewerID:      r.ReviewerID,
		RevieweeID:      r.RevieweeID,
		CollaborationID: r.CollaborationID,
		Rating:          r.Rating,
		Content:         r.Content,
		Reviewer:        dto.NewProfileSummary(r.Reviewer),
		CreatedAt:       r.CreatedAt,
	}
}

func handleReviewError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrReviewAlreadyExists):
		return apperrors.ErrAlreadyReviewed
	case errors.Is(err, repositories.ErrCollaborationNotFound):
		return apperrors.ErrReviewNotAllowed
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	}
	return apperrors.InternalError(err)
}

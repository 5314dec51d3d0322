package services

import (
	"errors"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MatchingService interface {
	// Candidates lists onboarded profiles the viewer has not swiped yet, best first.
	Candidates(db *gorm.DB, session auth.Session, limit int) ([]*dto.RankedProfileResponse, error)
	// Swipe records a decision. A right swipe answering a right swipe
	// creates the match in the same transaction.
	Swipe(db *gorm.DB, session auth.Session, req *dto.SwipeRequest) (*dto.SwipeResponse, error)
	ListMatches(db *gorm.DB, session auth.Session) ([]*dto.MatchResponse, error)
}

type MatchingServiceImpl struct {
	profileRepo repositories.ProfileRepository
	matchRepo   repositories.MatchRepository
}

func NewMatchingService(profileRepo repositories.ProfileRepository, matchRepo repositories.MatchRepository) MatchingService {
	return &MatchingServiceImpl{
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
	}
}

func (s *MatchingServiceImpl) Candidates(db *gorm.DB, session auth.Session, limit int) ([]*dto.RankedProfileResponse, error) {
	viewer, err := s.profileRepo.FindWithDetails(db, session.ProfileID)
	if err != nil {
		return nil, handleMatchingError(err)
	}

	candidates, err := s.profileRepo.FindCandidates(db, viewer.ID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rankProfiles(viewer, candidates), nil
}

func (s *MatchingServiceImpl) Swipe(db *gorm.DB, session auth.Session, req *dto.SwipeRequest) (*dto.SwipeResponse, error) {
	if req.Direction != models.SwipeLeft && req.Direction != models.SwipeRight {
		return nil, apperrors.NewBadRequestError("Direction must be left or right")
	}
	if req.ProfileID == session.ProfileID {
		return nil, apperrors.ErrCannotTargetSelf
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	target, err := s.profileRepo.FindByID(tx, req.ProfileID)
	if err != nil {
		return nil, handleMatchingError(err)
	}

	swipe := &models.SwipeAction{
		SwiperID:  session.ProfileID,
		SwipedID:  target.ID,
		Direction: req.Direction,
	}
	if err := s.matchRepo.CreateSwipe(tx, swipe); err != nil {
		return nil, handleMatchingError(err)
	}

	resp := &dto.SwipeResponse{}
	if req.Direction == models.SwipeRight {
		reverse, err := s.matchRepo.FindSwipe(tx, target.ID, session.ProfileID)
		switch {
		case err == nil && reverse.Direction == models.SwipeRight:
			match, err := s.matchRepo.CreateMatch(tx, session.ProfileID, target.ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			resp.Matched = true
			resp.Match = &dto.MatchResponse{
				ID:        match.ID,
				Partner:   dto.NewProfileSummary(target),
				CreatedAt: match.CreatedAt,
			}
		case err != nil && !errors.Is(err, repositories.ErrSwipeNotFound):
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}

func (s *MatchingServiceImpl) ListMatches(db *gorm.DB, session auth.Session) ([]*dto.MatchResponse, error) {
	matches, err := s.matchRepo.ListMatches(db, session.ProfileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	partnerIDs := make([]string, 0, len(matches))
	for i := range matches {
		partnerIDs = append(partnerIDs, matches[i].Partner(session.ProfileID))
	}
	partners, err := s.profileRepo.FindByIDs(db, partnerIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byID := make(map[string]*models.Profile, len(partners))
	for i := range partners {
		byID[partners[i].ID] = &partners[i]
	}

	out := make([]*dto.MatchResponse, 0, len(matches))
	for i := range matches {
		partner, ok := byID[matches[i].Partner(session.ProfileID)]
		if !ok {
			continue
		}
		out = append(out, &dto.MatchResponse{
			ID:        matches[i].ID,
			Partner:   dto.NewProfileSummary(partner),
			CreatedAt: matches[i].CreatedAt,
		})
	}
	return out, nil
}

func handleMatchingError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrAlreadySwiped):
		return apperrors.ErrAlreadySwiped
	}
	return apperrors.InternalError(err)
}

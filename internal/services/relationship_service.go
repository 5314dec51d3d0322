package services

import (
	"errors"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// RelationshipParties are the resolved profiles of an authorized notification.
type RelationshipParties struct {
	Sender    *models.Profile
	Recipient *models.Profile
}

// RelationshipService decides whether one profile may notify another.
type RelationshipService interface {
	// CanNotify is true when the pair is matched, has any collaboration,
	// the sender applied to one of the recipient's posts, or the type is
	// collab_interest and the recipient authored a post.
	CanNotify(db *gorm.DB, senderProfileID, recipientProfileID string, t models.NotificationType) (bool, error)
	// Authorize resolves both users' profiles and fails closed.
	Authorize(db *gorm.DB, senderUserID, recipientUserID string, t models.NotificationType) (*RelationshipParties, error)
}

type RelationshipServiceImpl struct {
	profileRepo      repositories.ProfileRepository
	relationshipRepo repositories.RelationshipRepository
}

func NewRelationshipService(
	profileRepo repositories.ProfileRepository,
	relationshipRepo repositories.RelationshipRepository,
) RelationshipService {
	return &RelationshipServiceImpl{
		profileRepo:      profileRepo,
		relationshipRepo: relationshipRepo,
	}
}

func (s *RelationshipServiceImpl) CanNotify(db *gorm.DB, senderProfileID, recipientProfileID string, t models.NotificationType) (bool, error) {
	checks := []func() (bool, error){
		func() (bool, error) { return s.relationshipRepo.MatchExists(db, senderProfileID, recipientProfileID) },
		func() (bool, error) { return s.relationshipRepo.CollaborationExists(db, senderProfileID, recipientProfileID) },
		func() (bool, error) { return s.relationshipRepo.AppliedToAuthor(db, senderProfileID, recipientProfileID) },
		func() (bool, error) {
			if t != models.NotificationCollabInterest {
				return false, nil
			}
			return s.relationshipRepo.HasAuthoredPost(db, recipientProfileID)
		},
	}

	for _, check := range checks {
		ok, err := check()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *RelationshipServiceImpl) Authorize(db *gorm.DB, senderUserID, recipientUserID string, t models.NotificationType) (*RelationshipParties, error) {
	sender, err := s.profileRepo.FindByUserID(db, senderUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrSenderProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	recipient, err := s.profileRepo.FindByUserID(db, recipientUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrRecipientNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	ok, err := s.CanNotify(db, sender.ID, recipient.ID, t)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrNoRelationship
	}

	return &RelationshipParties{Sender: sender, Recipient: recipient}, nil
}

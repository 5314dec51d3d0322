package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"collabex_backend/internal/algorithms"
	"collabex_backend/internal/auth"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// =======================
// Interface
// =======================

type CollaborationService interface {
	Create(db *gorm.DB, session auth.Session, req *dto.CreateCollaborationRequest) (*dto.CollaborationResponse, error)
	UpdateStatus(db *gorm.DB, session auth.Session, collabID string, target models.CollaborationStatus) (*dto.CollaborationResponse, error)
	Get(db *gorm.DB, session auth.Session, collabID string) (*dto.CollaborationResponse, error)
	ListMine(db *gorm.DB, session auth.Session, criteria repositories.CollaborationCriteria) ([]*dto.CollaborationResponse, error)
}

// =======================
// Implementation
// =======================

type CollaborationServiceImpl struct {
	collabRepo    repositories.CollaborationRepository
	profileRepo   repositories.ProfileRepository
	notifications NotificationService
	now           func() time.Time
}

func NewCollaborationService(
	collabRepo repositories.CollaborationRepository,
	profileRepo repositories.ProfileRepository,
	notifications NotificationService,
) CollaborationService {
	return &CollaborationServiceImpl{
		collabRepo:    collabRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a pending collaboration with partner and queues a
// collab_request notification in the same transaction.
func (s *CollaborationServiceImpl) Create(db *gorm.DB, session auth.Session, req *dto.CreateCollaborationRequest) (*dto.CollaborationResponse, error) {
	if session.ProfileID == "" {
		return nil, apperrors.ErrProfileNotFound
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > 200 {
		return nil, apperrors.NewBadRequestError("Title must be 1-200 characters")
	}
	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) > 2000 {
		return nil, apperrors.NewBadRequestError("Description must be at most 2000 characters")
	}
	if req.PartnerProfileID == session.ProfileID {
		return nil, apperrors.ErrCannotTargetSelf
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	requester, err := s.profileRepo.FindByID(tx, session.ProfileID)
	if err != nil {
		return nil, handleCollaborationError(err)
	}
	partner, err := s.profileRepo.FindByID(tx, req.PartnerProfileID)
	if err != nil {
		return nil, handleCollaborationError(err)
	}

	active, err := s.collabRepo.HasActiveBetween(tx, requester.ID, partner.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if active {
		return nil, apperrors.ErrActiveCollaborationExists
	}

	collab := &models.Collaboration{
		ProfileA:    requester.ID,
		ProfileB:    partner.ID,
		Title:       title,
		Description: description,
		Status:      models.CollaborationStatusPending,
	}
	if err := s.collabRepo.Create(tx, collab); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.enqueueNotice(tx, requester, partner, models.NotificationCollabRequest, collab); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	collab.Requester = requester
	collab.Recipient = partner
	return buildCollaborationResponse(collab, session.ProfileID), nil
}

// UpdateStatus applies one lifecycle transition. The status write and the
// outbox row it owes commit together; delivery happens later.
func (s *CollaborationServiceImpl) UpdateStatus(db *gorm.DB, session auth.Session, collabID string, target models.CollaborationStatus) (*dto.CollaborationResponse, error) {
	if !target.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid collaboration status")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	collab, err := s.collabRepo.FindByID(tx, collabID)
	if err != nil {
		return nil, handleCollaborationError(err)
	}

	role := algorithms.RoleOf(collab, session.ProfileID)
	previous, err := algorithms.Transition(collab, role, target, s.now())
	if err != nil {
		return nil, handleCollaborationError(err)
	}

	if err := s.collabRepo.UpdateStatus(tx, collab, previous); err != nil {
		return nil, handleCollaborationError(err)
	}

	if notice, ok := algorithms.NoticeFor(collab, previous, session.ProfileID); ok {
		actor, recipient := collab.Requester, collab.Recipient
		if notice.RecipientID == collab.ProfileA {
			actor, recipient = collab.Recipient, collab.Requester
		}
		if actor == nil || recipient == nil {
			return nil, apperrors.InternalError(errors.New("collaboration parties not loaded"))
		}
		if err := s.enqueueNotice(tx, actor, recipient, notice.Type, collab); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildCollaborationResponse(collab, session.ProfileID), nil
}

func (s *CollaborationServiceImpl) Get(db *gorm.DB, session auth.Session, collabID string) (*dto.CollaborationResponse, error) {
	collab, err := s.collabRepo.FindByID(db, collabID)
	if err != nil {
		return nil, handleCollaborationError(err)
	}
	if algorithms.RoleOf(collab, session.ProfileID) == algorithms.RoleNone {
		return nil, apperrors.ErrNotCollaborationParty
	}
	return buildCollaborationResponse(collab, session.ProfileID), nil
}

func (s *CollaborationServiceImpl) ListMine(db *gorm.DB, session auth.Session, criteria repositories.CollaborationCriteria) ([]*dto.CollaborationResponse, error) {
	if session.ProfileID == "" {
		return nil, apperrors.ErrProfileNotFound
	}
	if criteria.Status != "" && !criteria.Status.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid collaboration status")
	}

	collabs, err := s.collabRepo.ListByProfile(db, session.ProfileID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.CollaborationResponse, 0, len(collabs))
	for i := range collabs {
		out = append(out, buildCollaborationResponse(&collabs[i], session.ProfileID))
	}
	return out, nil
}

// ==========================
// Helpers
// ==========================

func (s *CollaborationServiceImpl) enqueueNotice(tx *gorm.DB, actor, recipient *models.Profile, t models.NotificationType, collab *models.Collaboration) error {
	sender := senderName(actor, defaultSenderName)
	title, message := notificationCopy(t, sender, collab.Title)

	payload, err := models.EncodePayload(collabPayload(t, collab))
	if err != nil {
		return err
	}

	return s.notifications.Enqueue(tx, dto.NotificationDispatch{
		SenderUserID: actor.UserID,
		SendNotificationRequest: dto.SendNotificationRequest{
			RecipientUserID: recipient.UserID,
			Type:            t,
			Title:           title,
			Message:         message,
			SenderName:      sender,
			Data:            []byte(payload),
		},
	})
}

func collabPayload(t models.NotificationType, c *models.Collaboration) models.NotificationPayload {
	switch t {
	case models.NotificationCollabAccepted:
		return &models.CollabAcceptedPayload{CollaborationID: c.ID, CollaborationTitle: c.Title}
	case models.NotificationCollabCompleted:
		return &models.CollabCompletedPayload{CollaborationID: c.ID, CollaborationTitle: c.Title}
	default:
		return &models.CollabRequestPayload{CollaborationID: c.ID, CollaborationTitle: c.Title}
	}
}

func buildCollaborationResponse(c *models.Collaboration, viewerProfileID string) *dto.CollaborationResponse {
	role := algorithms.RoleOf(c, viewerProfileID)
	allowed := algorithms.AllowedTransitions(c.Status, role)
	if allowed == nil {
		allowed = []models.CollaborationStatus{}
	}

	resp := &dto.CollaborationResponse{
		ID:                 c.ID,
		RequesterID:        c.ProfileA,
		RecipientID:        c.ProfileB,
		Title:              c.Title,
		Description:        c.Description,
		Status:             c.Status,
		CompletedAt:        c.CompletedAt,
		Role:               string(role),
		AllowedTransitions: allowed,
		CanReview:          algorithms.CanReview(c, role),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}

	switch role {
	case algorithms.RoleRequester:
		resp.Partner = dto.NewProfileSummary(c.Recipient)
	case algorithms.RoleRecipient:
		resp.Partner = dto.NewProfileSummary(c.Requester)
	}
	return resp
}

func handleCollaborationError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrCollaborationNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrCollaborationNotFound
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, algorithms.ErrNotParty):
		return apperrors.ErrNotCollaborationParty
	case errors.Is(err, algorithms.ErrTerminalStatus):
		return apperrors.ErrCollaborationTerminal
	case errors.Is(err, algorithms.ErrIllegalTransition):
		return apperrors.ErrTransitionNotAllowed
	case errors.Is(err, repositories.ErrStatusChanged):
		return apperrors.ErrConflict(err, "collaboration", "Collaboration status changed, reload and try again")
	}
	return apperrors.InternalError(err)
}

package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"
	"collabex_backend/ws"

	"gorm.io/gorm"
)

// ==========================
// Interface
// ==========================

type ChatService interface {
	// Partners lists matched profiles with the last message and unread count.
	Partners(db *gorm.DB, session auth.Session) ([]*dto.ChatPartnerResponse, error)
	History(db *gorm.DB, session auth.Session, partnerID string, limit int) ([]*dto.MessageResponse, error)
	// Send delivers a message to a matched or collaborating profile and
	// pushes it to the receiver's realtime feed.
	Send(ctx context.Context, db *gorm.DB, session auth.Session, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkRead(db *gorm.DB, session auth.Session, partnerID string) (int64, error)
	UnreadCount(db *gorm.DB, session auth.Session) (int64, error)
}

// ==========================
// Implementation
// ==========================

type ChatServiceImpl struct {
	messageRepo      repositories.MessageRepository
	matchRepo        repositories.MatchRepository
	profileRepo      repositories.ProfileRepository
	relationshipRepo repositories.RelationshipRepository
	publisher        ws.Publisher
}

func NewChatService(
	messageRepo repositories.MessageRepository,
	matchRepo repositories.MatchRepository,
	profileRepo repositories.ProfileRepository,
	relationshipRepo repositories.RelationshipRepository,
	publisher ws.Publisher,
) ChatService {
	if publisher == nil {
		publisher = ws.NopPublisher{}
	}
	return &ChatServiceImpl{
		messageRepo:      messageRepo,
		matchRepo:        matchRepo,
		profileRepo:      profileRepo,
		relationshipRepo: relationshipRepo,
		publisher:        publisher,
	}
}

func (s *ChatServiceImpl) Partners(db *gorm.DB, session auth.Session) ([]*dto.ChatPartnerResponse, error) {
	matches, err := s.matchRepo.ListMatches(db, session.ProfileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(matches))
	for i := range matches {
		ids = append(ids, matches[i].Partner(session.ProfileID))
	}
	profiles, err := s.profileRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byID := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	out := make([]*dto.ChatPartnerResponse, 0, len(ids))
	for _, id := range ids {
		partner, ok := byID[id]
		if !ok {
			continue
		}
		last, err := s.messageRepo.LastBetween(db, session.ProfileID, id)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		unread, err := s.messageRepo.CountUnreadFrom(db, session.ProfileID, id)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		entry := &dto.ChatPartnerResponse{
			Partner:     dto.NewProfileSummary(partner),
			UnreadCount: unread,
		}
		if last != nil {
			entry.LastMessage = newMessageResponse(last)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *ChatServiceImpl) History(db *gorm.DB, session auth.Session, partnerID string, limit int) ([]*dto.MessageResponse, error) {
	if err := s.ensureConnected(db, session.ProfileID, partnerID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListConversation(db, session.ProfileID, partnerID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, newMessageResponse(&messages[i]))
	}
	return out, nil
}

func (s *ChatServiceImpl) Send(ctx context.Context, db *gorm.DB, session auth.Session, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > 5000 {
		return nil, apperrors.NewBadRequestError("Message must be 1-5000 characters")
	}
	if req.ReceiverID == session.ProfileID {
		return nil, apperrors.ErrCannotTargetSelf
	}

	receiver, err := s.profileRepo.FindByID(db, req.ReceiverID)
	if err != nil {
		return nil, handleChatError(err)
	}
	if err := s.ensureConnected(db, session.ProfileID, receiver.ID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:   session.ProfileID,
		ReceiverID: receiver.ID,
		Content:    content,
	}
	if err := s.messageRepo.Create(db, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := newMessageResponse(msg)
	if event, err := ws.NewEvent(ws.EventMessage, resp); err == nil {
		if err := s.publisher.Publish(ctx, receiver.UserID, event); err != nil {
			logger.CtxWithError(ctx, "Realtime publish failed", err, "message_id", msg.ID)
		}
	}
	return resp, nil
}

func (s *ChatServiceImpl) MarkRead(db *gorm.DB, session auth.Session, partnerID string) (int64, error) {
	n, err := s.messageRepo.MarkConversationRead(db, session.ProfileID, partnerID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

func (s *ChatServiceImpl) UnreadCount(db *gorm.DB, session auth.Session) (int64, error) {
	n, err := s.messageRepo.CountUnread(db, session.ProfileID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

// ==========================
// Helpers
// ==========================

// ensureConnected allows a conversation between matched profiles or
// profiles that share a collaboration.
func (s *ChatServiceImpl) ensureConnected(db *gorm.DB, a, b string) error {
	matched, err := s.relationshipRepo.MatchExists(db, a, b)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if matched {
		return nil
	}

	collaborating, err := s.relationshipRepo.CollaborationExists(db, a, b)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !collaborating {
		return apperrors.ErrNotConnected
	}
	return nil
}

func newMessageResponse(m *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

func handleChatError(err error) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return apperrors.InternalError(err)
}

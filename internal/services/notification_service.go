package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"collabex_backend/internal/email"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"
	"collabex_backend/ws"

	"gorm.io/gorm"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// escapeHTML escapes the five HTML-significant characters.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ==========================
// Interface
// ==========================

type NotificationService interface {
	// Dispatch validates, authorizes and stores a notification, publishes it
	// to the realtime feed and queues its email.
	Dispatch(ctx context.Context, db *gorm.DB, senderUserID string, req *dto.SendNotificationRequest) (*models.Notification, error)
	// Enqueue defers a dispatch through the outbox. db is the caller's transaction.
	Enqueue(db *gorm.DB, dispatch dto.NotificationDispatch) error

	// Outbox handlers.
	DeliverDispatch(ctx context.Context, db *gorm.DB, payload []byte) error
	DeliverEmail(ctx context.Context, db *gorm.DB, payload []byte) error

	// Inbox.
	List(db *gorm.DB, userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, userID, notificationID string) error
	MarkAllRead(db *gorm.DB, userID string) (int64, error)
	Delete(db *gorm.DB, userID, notificationID string) error
}

// ==========================
// Implementation
// ==========================

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	outboxRepo       repositories.OutboxRepository
	relationships    RelationshipService
	publisher        ws.Publisher
	mailer           email.Provider
	composer         *email.NotificationComposer
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	outboxRepo repositories.OutboxRepository,
	relationships RelationshipService,
	publisher ws.Publisher,
	mailer email.Provider,
	composer *email.NotificationComposer,
) NotificationService {
	if publisher == nil {
		publisher = ws.NopPublisher{}
	}
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		outboxRepo:       outboxRepo,
		relationships:    relationships,
		publisher:        publisher,
		mailer:           mailer,
		composer:         composer,
	}
}

// ==========================
// Dispatch
// ==========================

func (s *NotificationServiceImpl) Dispatch(ctx context.Context, db *gorm.DB, senderUserID string, req *dto.SendNotificationRequest) (*models.Notification, error) {
	if msg := dto.ValidateSendNotification(req); msg != "" {
		return nil, apperrors.NewBadRequestError(msg)
	}

	payload, err := models.DecodePayload(req.Type, req.Data)
	if err != nil {
		return nil, apperrors.NewBadRequestError(dto.MsgInvalidData)
	}
	data, err := models.EncodePayload(payload)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.relationships.Authorize(db, senderUserID, req.RecipientUserID, req.Type); err != nil {
		return nil, err
	}

	recipient, err := s.userRepo.FindByID(db, req.RecipientUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrRecipientNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	notification := &models.Notification{
		UserID:  req.RecipientUserID,
		Type:    req.Type,
		Title:   escapeHTML(req.Title),
		Message: escapeHTML(req.Message),
		Data:    data,
		Read:    false,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.notificationRepo.Create(tx, notification); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Raw fields: the email templates escape on render.
	if err := enqueueEvent(tx, s.outboxRepo, models.OutboxKindEmail, email.NotificationEmail{
		Type:       req.Type,
		To:         recipient.Email,
		SenderName: req.SenderName,
		Title:      req.Title,
		Message:    req.Message,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publish(ctx, notification)

	logger.CtxInfo(ctx, "Notification dispatched",
		"notification_id", notification.ID,
		"recipient_user_id", notification.UserID,
		"type", notification.Type,
	)
	return notification, nil
}

func (s *NotificationServiceImpl) publish(ctx context.Context, n *models.Notification) {
	event, err := ws.NewEvent(ws.EventNotification, dto.NewNotificationResponse(n))
	if err == nil {
		err = s.publisher.Publish(ctx, n.UserID, event)
	}
	if err != nil {
		logger.CtxWithError(ctx, "Realtime publish failed", err, "notification_id", n.ID)
	}
}

func (s *NotificationServiceImpl) Enqueue(db *gorm.DB, dispatch dto.NotificationDispatch) error {
	return enqueueEvent(db, s.outboxRepo, models.OutboxKindNotification, dispatch)
}

// ==========================
// Outbox handlers
// ==========================

func (s *NotificationServiceImpl) DeliverDispatch(ctx context.Context, db *gorm.DB, payload []byte) error {
	var dispatch dto.NotificationDispatch
	if err := json.Unmarshal(payload, &dispatch); err != nil {
		return apperrors.NewBadRequestError("malformed notification event").WithError(err)
	}
	_, err := s.Dispatch(ctx, db, dispatch.SenderUserID, &dispatch.SendNotificationRequest)
	return err
}

func (s *NotificationServiceImpl) DeliverEmail(ctx context.Context, _ *gorm.DB, payload []byte) error {
	var n email.NotificationEmail
	if err := json.Unmarshal(payload, &n); err != nil {
		return apperrors.NewBadRequestError("malformed email event").WithError(err)
	}

	msg, err := s.composer.Compose(n)
	if err != nil {
		return apperrors.NewBadRequestError("cannot compose notification email").WithError(err)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return apperrors.ExternalServiceError(err, "email")
	}
	return nil
}

// ==========================
// Inbox
// ==========================

func (s *NotificationServiceImpl) List(db *gorm.DB, userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(db, userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]*dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
	}
	for i := range notifications {
		resp.Notifications = append(resp.Notifications, dto.NewNotificationResponse(&notifications[i]))
	}
	return resp, nil
}

func (s *NotificationServiceImpl) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkRead(db *gorm.DB, userID, notificationID string) error {
	return handleNotificationError(s.notificationRepo.MarkRead(db, notificationID, userID))
}

func (s *NotificationServiceImpl) MarkAllRead(db *gorm.DB, userID string) (int64, error) {
	n, err := s.notificationRepo.MarkAllRead(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

func (s *NotificationServiceImpl) Delete(db *gorm.DB, userID, notificationID string) error {
	return handleNotificationError(s.notificationRepo.Delete(db, notificationID, userID))
}

func handleNotificationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotificationNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotificationNotFound
	}
	return apperrors.InternalError(err)
}

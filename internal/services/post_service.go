package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

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

type PostService interface {
	Create(db *gorm.DB, session auth.Session, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	ListOpen(db *gorm.DB, criteria repositories.PostCriteria) ([]*dto.PostResponse, error)
	Get(db *gorm.DB, postID string) (*dto.PostResponse, error)
	ListMine(db *gorm.DB, session auth.Session) ([]*dto.PostResponse, error)
	UpdateStatus(db *gorm.DB, session auth.Session, postID string, status models.PostStatus) (*dto.PostResponse, error)
	CloseExpired(db *gorm.DB) (int64, error)

	// Apply records interest in an open post and queues a collab_interest
	// notification to its author in the same transaction.
	Apply(db *gorm.DB, session auth.Session, postID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	ListApplications(db *gorm.DB, session auth.Session, postID string) ([]*dto.ApplicationResponse, error)
	ListMyApplications(db *gorm.DB, session auth.Session) ([]*dto.ApplicationResponse, error)
	UpdateApplicationStatus(db *gorm.DB, session auth.Session, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error)
}

// =======================
// Implementation
// =======================

type PostServiceImpl struct {
	postRepo      repositories.PostRepository
	profileRepo   repositories.ProfileRepository
	notifications NotificationService
	now           func() time.Time
}

func NewPostService(
	postRepo repositories.PostRepository,
	profileRepo repositories.ProfileRepository,
	notifications NotificationService,
) PostService {
	return &PostServiceImpl{
		postRepo:      postRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostServiceImpl) Create(db *gorm.DB, session auth.Session, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > 200 {
		return nil, apperrors.NewBadRequestError("Title must be 1-200 characters")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewBadRequestError("Description is required")
	}
	if req.Deadline != nil && !req.Deadline.After(s.now()) {
		return nil, apperrors.NewBadRequestError("Deadline must be in the future")
	}

	author, err := s.profileRepo.FindByID(db, session.ProfileID)
	if err != nil {
		return nil, handlePostError(err)
	}

	post := &models.CollabPost{
		AuthorID:     author.ID,
		Title:        title,
		Description:  description,
		Requirements: strings.TrimSpace(req.Requirements),
		Niche:        strings.ToLower(strings.TrimSpace(req.Niche)),
		Deadline:     req.Deadline,
		Status:       models.PostStatusOpen,
	}
	post.SetPlatforms(normalizeNiches(req.Platforms))

	if err := s.postRepo.CreatePost(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	post.Author = author
	return dto.NewPostResponse(post), nil
}

func (s *PostServiceImpl) ListOpen(db *gorm.DB, criteria repositories.PostCriteria) ([]*dto.PostResponse, error) {
	criteria.Niche = strings.ToLower(strings.TrimSpace(criteria.Niche))
	posts, err := s.postRepo.ListOpenPosts(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPostResponses(posts), nil
}

func (s *PostServiceImpl) Get(db *gorm.DB, postID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindPostByID(db, postID)
	if err != nil {
		return nil, handlePostError(err)
	}
	return dto.NewPostResponse(post), nil
}

func (s *PostServiceImpl) ListMine(db *gorm.DB, session auth.Session) ([]*dto.PostResponse, error) {
	posts, err := s.postRepo.ListByAuthor(db, session.ProfileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPostResponses(posts), nil
}

func (s *PostServiceImpl) UpdateStatus(db *gorm.DB, session auth.Session, postID string, status models.PostStatus) (*dto.PostResponse, error) {
	if !status.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid post status")
	}

	post, err := s.postRepo.FindPostByID(db, postID)
	if err != nil {
		return nil, handlePostError(err)
	}
	if post.AuthorID != session.ProfileID {
		return nil, apperrors.ErrNotPostAuthor
	}

	if err := s.postRepo.UpdatePost(db, post.ID, map[string]interface{}{"status": status}); err != nil {
		return nil, handlePostError(err)
	}
	post.Status = status
	return dto.NewPostResponse(post), nil
}

func (s *PostServiceImpl) CloseExpired(db *gorm.DB) (int64, error) {
	n, err := s.postRepo.CloseExpiredPosts(db, s.now())
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

// ==========================
// Applications
// ==========================

func (s *PostServiceImpl) Apply(db *gorm.DB, session auth.Session, postID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	message := strings.TrimSpace(req.Message)
	if utf8.RuneCountInString(message) > 1000 {
		return nil, apperrors.NewBadRequestError("Message must be at most 1000 characters")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	post, err := s.postRepo.FindPostByID(tx, postID)
	if err != nil {
		return nil, handlePostError(err)
	}
	if post.AuthorID == session.ProfileID {
		return nil, apperrors.ErrCannotTargetSelf
	}
	if post.Status != models.PostStatusOpen {
		return nil, apperrors.ErrPostNotOpen
	}

	applicant, err := s.profileRepo.FindByID(tx, session.ProfileID)
	if err != nil {
		return nil, handlePostError(err)
	}
	if post.Author == nil {
		if post.Author, err = s.profileRepo.FindByID(tx, post.AuthorID); err != nil {
			return nil, handlePostError(err)
		}
	}

	app := &models.CollabApplication{
		PostID:      post.ID,
		ApplicantID: applicant.ID,
		Message:     message,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.postRepo.CreateApplication(tx, app); err != nil {
		return nil, handlePostError(err)
	}

	if err := s.enqueueInterest(tx, applicant, post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handlePostError(err)
	}

	app.Applicant = applicant
	return dto.NewApplicationResponse(app), nil
}

func (s *PostServiceImpl) ListApplications(db *gorm.DB, session auth.Session, postID string) ([]*dto.ApplicationResponse, error) {
	post, err := s.postRepo.FindPostByID(db, postID)
	if err != nil {
		return nil, handlePostError(err)
	}
	if post.AuthorID != session.ProfileID {
		return nil, apperrors.ErrNotPostAuthor
	}

	apps, err := s.postRepo.ListApplicationsByPost(db, post.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toApplicationResponses(apps), nil
}

func (s *PostServiceImpl) ListMyApplications(db *gorm.DB, session auth.Session) ([]*dto.ApplicationResponse, error) {
	apps, err := s.postRepo.ListApplicationsByApplicant(db, session.ProfileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toApplicationResponses(apps), nil
}

func (s *PostServiceImpl) UpdateApplicationStatus(db *gorm.DB, session auth.Session, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if !status.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid application status")
	}

	app, err := s.postRepo.FindApplicationByID(db, applicationID)
	if err != nil {
		return nil, handlePostError(err)
	}
	if app.Post == nil || app.Post.AuthorID != session.ProfileID {
		return nil, apperrors.ErrNotPostAuthor
	}

	if err := s.postRepo.UpdateApplicationStatus(db, app.ID, status); err != nil {
		return nil, handlePostError(err)
	}
	app.Status = status
	return dto.NewApplicationResponse(app), nil
}

// ==========================
// Helpers
// ==========================

// enqueueInterest queues the collab_interest notice. The message names the
// applicant (or "An influencer"); the sender name falls back to "A user".
func (s *PostServiceImpl) enqueueInterest(tx *gorm.DB, applicant *models.Profile, post *models.CollabPost) error {
	title, message := notificationCopy(models.NotificationCollabInterest, senderName(applicant, defaultInfluencer), post.Title)

	payload, err := models.EncodePayload(&models.CollabInterestPayload{PostID: post.ID, PostTitle: post.Title})
	if err != nil {
		return err
	}

	return s.notifications.Enqueue(tx, dto.NotificationDispatch{
		SenderUserID: applicant.UserID,
		SendNotificationRequest: dto.SendNotificationRequest{
			RecipientUserID: post.Author.UserID,
			Type:            models.NotificationCollabInterest,
			Title:           title,
			Message:         message,
			SenderName:      senderName(applicant, defaultSenderName),
			Data:            []byte(payload),
		},
	})
}

func toPostResponses(posts []models.CollabPost) []*dto.PostResponse {
	out := make([]*dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, dto.NewPostResponse(&posts[i]))
	}
	return out
}

func toApplicationResponses(apps []models.CollabApplication) []*dto.ApplicationResponse {
	out := make([]*dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, dto.NewApplicationResponse(&apps[i]))
	}
	return out
}

func handlePostError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPostNotFound):
		return apperrors.ErrPostNotFound
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrApplicationNotFound
	case errors.Is(err, repositories.ErrAlreadyApplied):
		return apperrors.ErrAlreadyApplied
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	}
	return apperrors.InternalError(err)
}

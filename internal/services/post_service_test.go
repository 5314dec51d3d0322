package services

import (
	"testing"
	"time"

	"collabex_backend/internal/models"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.PostService
	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)

	past := time.Now().Add(-time.Hour)
	_, err := svc.Create(env.db, brand.Session, &dto.CreatePostRequest{Title: "T", Description: "D", Deadline: &past})
	assert.Error(t, err)

	post, err := svc.Create(env.db, brand.Session, &dto.CreatePostRequest{
		Title:       " Summer drop ",
		Description: "Two reels",
		Niche:       " Fashion ",
		Platforms:   []string{"Instagram", "tiktok"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer drop", post.Title)
	assert.Equal(t, "fashion", post.Niche)
	assert.Equal(t, models.PostStatusOpen, post.Status)
	assert.Len(t, post.Platforms, 2)
}

func TestApplyQueuesInterestOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.PostService
	brand := testutil.InsertAccount(t, env.db, "Brand Co", models.AccountTypeBrand)
	creator := testutil.InsertAccount(t, env.db, "Ana", models.AccountTypeInfluencer)
	post := testutil.InsertPost(t, env.db, brand, nil)

	app, err := svc.Apply(env.db, creator.Session, post.ID, &dto.ApplyRequest{Message: "Count me in"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	_, err = svc.Apply(env.db, creator.Session, post.ID, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	_, err = svc.Apply(env.db, brand.Session, post.ID, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrCannotTargetSelf)

	queued := dispatches(t, env)
	require.Len(t, queued, 1)
	assert.Equal(t, models.NotificationCollabInterest, queued[0].Type)
	assert.Equal(t, brand.User.ID, queued[0].RecipientUserID)
	assert.Equal(t, "Someone's Interested!", queued[0].Title)
	assert.Equal(t, `Ana is interested in your collab: "`+post.Title+`"`, queued[0].Message)
	assert.JSONEq(t, `{"postId":"`+post.ID+`","postTitle":"`+post.Title+`"}`, string(queued[0].Data))
}

func TestApplyToClosedPost(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.PostService
	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)
	creator := testutil.InsertAccount(t, env.db, "creator", models.AccountTypeInfluencer)
	post := testutil.InsertPost(t, env.db, brand, nil)

	_, err := svc.UpdateStatus(env.db, creator.Session, post.ID, models.PostStatusClosed)
	assert.ErrorIs(t, err, apperrors.ErrNotPostAuthor)

	_, err = svc.UpdateStatus(env.db, brand.Session, post.ID, models.PostStatusClosed)
	require.NoError(t, err)

	_, err = svc.Apply(env.db, creator.Session, post.ID, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrPostNotOpen)
	assert.Empty(t, dispatches(t, env))
}

func TestApplicationReview(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.PostService
	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)
	creator := testutil.InsertAccount(t, env.db, "creator", models.AccountTypeInfluencer)
	post := testutil.InsertPost(t, env.db, brand, nil)
	app := testutil.InsertApplication(t, env.db, post, creator)

	_, err := svc.ListApplications(env.db, creator.Session, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotPostAuthor)

	apps, err := svc.ListApplications(env.db, brand.Session, post.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	updated, err := svc.UpdateApplicationStatus(env.db, brand.Session, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)

	mine, err := svc.ListMyApplications(env.db, creator.Session)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.ApplicationStatusAccepted, mine[0].Status)
}

func TestCloseExpired(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.PostService
	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(24 * time.Hour)
	expired := testutil.InsertPost(t, env.db, brand, &past)
	testutil.InsertPost(t, env.db, brand, &future)
	testutil.InsertPost(t, env.db, brand, nil)

	closed, err := svc.CloseExpired(env.db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, closed)

	got, err := svc.Get(env.db, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusClosed, got.Status)

	open, err := svc.ListMine(env.db, brand.Session)
	require.NoError(t, err)
	assert.Len(t, open, 3)
}

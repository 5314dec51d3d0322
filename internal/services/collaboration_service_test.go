package services

import (
	"context"
	"encoding/json"
	"testing"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatches(t *testing.T, env *testEnv) []dto.NotificationDispatch {
	t.Helper()
	var out []dto.NotificationDispatch
	for _, e := range testutil.OutboxEvents(t, env.db, models.OutboxKindNotification) {
		var d dto.NotificationDispatch
		require.NoError(t, json.Unmarshal(e.Payload, &d))
		out = append(out, d)
	}
	return out
}

func TestCollaborationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.CollaborationService
	brand := testutil.InsertAccount(t, env.db, "Brand Co", models.AccountTypeBrand)
	creator := testutil.InsertAccount(t, env.db, "Ana", models.AccountTypeInfluencer)

	created, err := svc.Create(env.db, brand.Session, &dto.CreateCollaborationRequest{
		PartnerProfileID: creator.Profile.ID,
		Title:            "  Spring launch  ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CollaborationStatusPending, created.Status)
	assert.Equal(t, "Spring launch", created.Title)
	assert.Equal(t, "requester", created.Role)
	assert.Equal(t, []models.CollaborationStatus{models.CollaborationStatusCancelled}, created.AllowedTransitions)

	_, err = svc.Create(env.db, brand.Session, &dto.CreateCollaborationRequest{
		PartnerProfileID: creator.Profile.ID,
		Title:            "Another",
	})
	assert.ErrorIs(t, err, apperrors.ErrActiveCollaborationExists)

	_, err = svc.UpdateStatus(env.db, brand.Session, created.ID, models.CollaborationStatusInProgress)
	assert.ErrorIs(t, err, apperrors.ErrTransitionNotAllowed)

	accepted, err := svc.UpdateStatus(env.db, creator.Session, created.ID, models.CollaborationStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.CollaborationStatusInProgress, accepted.Status)
	assert.Nil(t, accepted.CompletedAt)

	completed, err := svc.UpdateStatus(env.db, brand.Session, created.ID, models.CollaborationStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.CollaborationStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.True(t, completed.CanReview)

	_, err = svc.UpdateStatus(env.db, creator.Session, created.ID, models.CollaborationStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrCollaborationTerminal)

	queued := dispatches(t, env)
	require.Len(t, queued, 3)

	assert.Equal(t, models.NotificationCollabRequest, queued[0].Type)
	assert.Equal(t, brand.User.ID, queued[0].SenderUserID)
	assert.Equal(t, creator.User.ID, queued[0].RecipientUserID)
	assert.Equal(t, `Brand Co wants to collaborate with you: "Spring launch"`, queued[0].Message)

	assert.Equal(t, models.NotificationCollabAccepted, queued[1].Type)
	assert.Equal(t, creator.User.ID, queued[1].SenderUserID)
	assert.Equal(t, brand.User.ID, queued[1].RecipientUserID)
	assert.Equal(t, "Collaboration Accepted!", queued[1].Title)

	assert.Equal(t, models.NotificationCollabCompleted, queued[2].Type)
	assert.Equal(t, creator.User.ID, queued[2].RecipientUserID)
	assert.Equal(t, `Your collaboration "Spring launch" with Brand Co is complete`, queued[2].Message)

	// Delivering the queued events goes through the relationship gate.
	for _, e := range testutil.OutboxEvents(t, env.db, models.OutboxKindNotification) {
		require.NoError(t, env.services.NotificationService.DeliverDispatch(context.Background(), env.db, e.Payload))
	}
	inbox, err := env.services.NotificationService.List(env.db, creator.User.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Len(t, inbox.Notifications, 2)
	assert.Len(t, testutil.OutboxEvents(t, env.db, models.OutboxKindEmail), 3)
}

func TestCollaborationDeclineSendsNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.CollaborationService
	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)
	creator := testutil.InsertAccount(t, env.db, "creator", models.AccountTypeInfluencer)

	collab := testutil.InsertCollaboration(t, env.db, brand, creator, models.CollaborationStatusPending)

	resp, err := svc.UpdateStatus(env.db, creator.Session, collab.ID, models.CollaborationStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.CollaborationStatusCancelled, resp.Status)
	assert.Empty(t, dispatches(t, env))
}

func TestCollaborationAccess(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.CollaborationService
	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)
	creator := testutil.InsertAccount(t, env.db, "creator", models.AccountTypeInfluencer)
	outsider := testutil.InsertAccount(t, env.db, "outsider", models.AccountTypeInfluencer)

	collab := testutil.InsertCollaboration(t, env.db, brand, creator, models.CollaborationStatusInProgress)

	_, err := svc.Get(env.db, outsider.Session, collab.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotCollaborationParty)

	_, err = svc.UpdateStatus(env.db, outsider.Session, collab.ID, models.CollaborationStatusCompleted)
	assert.ErrorIs(t, err, apperrors.ErrNotCollaborationParty)

	_, err = svc.Create(env.db, brand.Session, &dto.CreateCollaborationRequest{PartnerProfileID: brand.Profile.ID, Title: "Self"})
	assert.ErrorIs(t, err, apperrors.ErrCannotTargetSelf)

	got, err := svc.Get(env.db, creator.Session, collab.ID)
	require.NoError(t, err)
	assert.Equal(t, "recipient", got.Role)
	require.NotNil(t, got.Partner)

	mine, err := svc.ListMine(env.db, brand.Session, repositories.CollaborationCriteria{Status: models.CollaborationStatusInProgress})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

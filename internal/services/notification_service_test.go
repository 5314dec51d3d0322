package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"collabex_backend/internal/email"
	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"
	"collabex_backend/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendRequest(recipient *testutil.Account, t models.NotificationType) *dto.SendNotificationRequest {
	return &dto.SendNotificationRequest{
		RecipientUserID: recipient.User.ID,
		Type:            t,
		Title:           "New <b>request</b>",
		Message:         `Tom & "Jerry" say hi`,
		SenderName:      "Tom",
		Data:            json.RawMessage(`{"collaborationId":"c-1","extra":"dropped"}`),
	}
}

func TestDispatchStoresPublishesAndQueuesEmail(t *testing.T) {
	env := newTestEnv(t)
	sender := testutil.InsertAccount(t, env.db, "sender", models.AccountTypeBrand)
	recipient := testutil.InsertAccount(t, env.db, "recipient", models.AccountTypeInfluencer)
	testutil.InsertMatch(t, env.db, sender, recipient)

	n, err := env.services.NotificationService.Dispatch(context.Background(), env.db, sender.User.ID,
		sendRequest(recipient, models.NotificationCollabRequest))
	require.NoError(t, err)

	var stored models.Notification
	require.NoError(t, env.db.First(&stored, "id = ?", n.ID).Error)
	assert.Equal(t, recipient.User.ID, stored.UserID)
	assert.Equal(t, "New &lt;b&gt;request&lt;/b&gt;", stored.Title)
	assert.Equal(t, "Tom &amp; &quot;Jerry&quot; say hi", stored.Message)
	assert.False(t, stored.Read)
	assert.JSONEq(t, `{"collaborationId":"c-1"}`, string(stored.Data))

	events := env.publisher.For(recipient.User.ID)
	require.Len(t, events, 1)
	assert.Equal(t, ws.EventNotification, events[0].Type)

	queued := testutil.OutboxEvents(t, env.db, models.OutboxKindEmail)
	require.Len(t, queued, 1)
	var mail email.NotificationEmail
	require.NoError(t, json.Unmarshal(queued[0].Payload, &mail))
	assert.Equal(t, recipient.User.Email, mail.To)
	assert.Equal(t, "New <b>request</b>", mail.Title)
	assert.Equal(t, "Tom", mail.SenderName)
}

func TestDispatchRejections(t *testing.T) {
	env := newTestEnv(t)
	sender := testutil.InsertAccount(t, env.db, "sender", models.AccountTypeBrand)
	recipient := testutil.InsertAccount(t, env.db, "recipient", models.AccountTypeInfluencer)
	svc := env.services.NotificationService

	_, err := svc.Dispatch(context.Background(), env.db, sender.User.ID, sendRequest(recipient, models.NotificationCollabRequest))
	assert.ErrorIs(t, err, apperrors.ErrNoRelationship)

	testutil.InsertMatch(t, env.db, sender, recipient)

	req := sendRequest(recipient, models.NotificationCollabRequest)
	req.Data = json.RawMessage(`["not","an","object"]`)
	_, err = svc.Dispatch(context.Background(), env.db, sender.User.ID, req)
	status, msg := apperrors.Message(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.MsgInvalidData, msg)

	req = sendRequest(recipient, models.NotificationType("collab_spam"))
	_, err = svc.Dispatch(context.Background(), env.db, sender.User.ID, req)
	status, _ = apperrors.Message(err)
	assert.Equal(t, http.StatusBadRequest, status)

	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, testutil.OutboxEvents(t, env.db, models.OutboxKindEmail))
}

func TestDeliverEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.NotificationService

	payload, err := json.Marshal(email.NotificationEmail{
		Type:       models.NotificationCollabAccepted,
		To:         "ana@example.com",
		SenderName: "Brand Co",
		Title:      "Collaboration Accepted!",
		Message:    "Brand Co accepted your collaboration request",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeliverEmail(context.Background(), env.db, payload))
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, env.mailer.sent[0].To)
	assert.Equal(t, "Brand Co accepted your collaboration request!", env.mailer.sent[0].Subject)

	env.mailer.err = errors.New("smtp down")
	err = svc.DeliverEmail(context.Background(), env.db, payload)
	status, _ := apperrors.Message(err)
	assert.Equal(t, http.StatusBadGateway, status)

	err = svc.DeliverEmail(context.Background(), env.db, []byte("{"))
	status, _ = apperrors.Message(err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestInbox(t *testing.T) {
	env := newTestEnv(t)
	sender := testutil.InsertAccount(t, env.db, "sender", models.AccountTypeBrand)
	recipient := testutil.InsertAccount(t, env.db, "recipient", models.AccountTypeInfluencer)
	other := testutil.InsertAccount(t, env.db, "other", models.AccountTypeInfluencer)
	testutil.InsertMatch(t, env.db, sender, recipient)
	svc := env.services.NotificationService

	var ids []string
	for i := 0; i < 3; i++ {
		n, err := svc.Dispatch(context.Background(), env.db, sender.User.ID, sendRequest(recipient, models.NotificationCollabRequest))
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	list, err := svc.List(env.db, recipient.User.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 3)
	assert.EqualValues(t, 3, list.UnreadCount)

	require.NoError(t, svc.MarkRead(env.db, recipient.User.ID, ids[0]))
	assert.ErrorIs(t, svc.MarkRead(env.db, other.User.ID, ids[1]), apperrors.ErrNotificationNotFound)

	unread, err := svc.UnreadCount(env.db, recipient.User.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	marked, err := svc.MarkAllRead(env.db, recipient.User.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, marked)

	require.NoError(t, svc.Delete(env.db, recipient.User.ID, ids[2]))
	assert.ErrorIs(t, svc.Delete(env.db, recipient.User.ID, ids[2]), apperrors.ErrNotificationNotFound)
}

func TestDispatchDropsMistypedDataFields(t *testing.T) {
	env := newTestEnv(t)
	sender := testutil.InsertAccount(t, env.db, "sender", models.AccountTypeInfluencer)
	recipient := testutil.InsertAccount(t, env.db, "recipient", models.AccountTypeBrand)
	testutil.InsertMatch(t, env.db, sender, recipient)

	req := sendRequest(recipient, models.NotificationCollabInterest)
	req.Data = json.RawMessage(`{"postId":42,"postTitle":"Summer launch"}`)
	n, err := env.services.NotificationService.Dispatch(context.Background(), env.db, sender.User.ID, req)
	require.NoError(t, err)

	var stored models.Notification
	require.NoError(t, env.db.First(&stored, "id = ?", n.ID).Error)
	assert.JSONEq(t, `{"postTitle":"Summer launch"}`, string(stored.Data))
}

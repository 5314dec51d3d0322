package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"collabex_backend/internal/models"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"
	"collabex_backend/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatBetweenMatchedProfiles(t *testing.T) {
	env := newTestEnv(t)
	chat := env.services.ChatService
	ctx := context.Background()

	brand := testutil.InsertAccount(t, env.db, "Brand Co", models.AccountTypeBrand, "fitness")
	creator := testutil.InsertAccount(t, env.db, "Ana", models.AccountTypeInfluencer, "fitness")
	testutil.InsertMatch(t, env.db, brand, creator)

	sent, err := chat.Send(ctx, env.db, brand.Session, &dto.SendMessageRequest{
		ReceiverID: creator.Profile.ID,
		Content:    "  Hi Ana!  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi Ana!", sent.Content)

	_, err = chat.Send(ctx, env.db, creator.Session, &dto.SendMessageRequest{
		ReceiverID: brand.Profile.ID,
		Content:    "Hello!",
	})
	require.NoError(t, err)

	events := env.publisher.For(creator.User.ID)
	require.Len(t, events, 1)
	assert.Equal(t, ws.EventMessage, events[0].Type)
	var pushed dto.MessageResponse
	require.NoError(t, json.Unmarshal(events[0].Payload, &pushed))
	assert.Equal(t, sent.ID, pushed.ID)

	history, err := chat.History(env.db, brand.Session, creator.Profile.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Hi Ana!", history[0].Content)
	assert.Equal(t, "Hello!", history[1].Content)

	unread, err := chat.UnreadCount(env.db, creator.Session)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	partners, err := chat.Partners(env.db, creator.Session)
	require.NoError(t, err)
	require.Len(t, partners, 1)
	assert.Equal(t, brand.Profile.ID, partners[0].Partner.ID)
	assert.EqualValues(t, 1, partners[0].UnreadCount)
	require.NotNil(t, partners[0].LastMessage)

	marked, err := chat.MarkRead(env.db, creator.Session, brand.Profile.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, marked)

	unread, err = chat.UnreadCount(env.db, creator.Session)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestChatRequiresConnection(t *testing.T) {
	env := newTestEnv(t)
	chat := env.services.ChatService
	ctx := context.Background()

	brand := testutil.InsertAccount(t, env.db, "Brand Co", models.AccountTypeBrand, "fitness")
	stranger := testutil.InsertAccount(t, env.db, "Stranger", models.AccountTypeInfluencer, "travel")
	partner := testutil.InsertAccount(t, env.db, "Partner", models.AccountTypeInfluencer, "fitness")
	testutil.InsertCollaboration(t, env.db, brand, partner, models.CollaborationStatusCancelled)

	_, err := chat.Send(ctx, env.db, brand.Session, &dto.SendMessageRequest{ReceiverID: stranger.Profile.ID, Content: "hey"})
	assert.ErrorIs(t, err, apperrors.ErrNotConnected)

	_, err = chat.History(env.db, brand.Session, stranger.Profile.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotConnected)

	_, err = chat.Send(ctx, env.db, brand.Session, &dto.SendMessageRequest{ReceiverID: partner.Profile.ID, Content: "thanks anyway"})
	assert.NoError(t, err)

	_, err = chat.Send(ctx, env.db, brand.Session, &dto.SendMessageRequest{ReceiverID: brand.Profile.ID, Content: "me"})
	assert.ErrorIs(t, err, apperrors.ErrCannotTargetSelf)

	_, err = chat.Send(ctx, env.db, brand.Session, &dto.SendMessageRequest{ReceiverID: partner.Profile.ID, Content: strings.Repeat("a", 5001)})
	status, _ := apperrors.Message(err)
	assert.Equal(t, 400, status)
}

package services

import (
	"testing"

	"collabex_backend/internal/models"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanNotify(t *testing.T) {
	env := newTestEnv(t)
	rel := env.services.RelationshipService

	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)
	matched := testutil.InsertAccount(t, env.db, "matched", models.AccountTypeInfluencer)
	partner := testutil.InsertAccount(t, env.db, "partner", models.AccountTypeInfluencer)
	applicant := testutil.InsertAccount(t, env.db, "applicant", models.AccountTypeInfluencer)
	stranger := testutil.InsertAccount(t, env.db, "stranger", models.AccountTypeInfluencer)

	testutil.InsertMatch(t, env.db, matched, brand)
	testutil.InsertCollaboration(t, env.db, brand, partner, models.CollaborationStatusCancelled)
	post := testutil.InsertPost(t, env.db, brand, nil)
	testutil.InsertApplication(t, env.db, post, applicant)

	tests := []struct {
		name      string
		sender    *testutil.Account
		recipient *testutil.Account
		typ       models.NotificationType
		want      bool
	}{
		{"match either direction", brand, matched, models.NotificationCollabRequest, true},
		{"match reverse", matched, brand, models.NotificationCollabRequest, true},
		{"any collaboration even cancelled", partner, brand, models.NotificationCollabCompleted, true},
		{"applicant to author", applicant, brand, models.NotificationCollabAccepted, true},
		{"author to applicant is not an application", brand, applicant, models.NotificationCollabAccepted, false},
		{"interest in an author's post", stranger, brand, models.NotificationCollabInterest, true},
		{"interest to non author", stranger, partner, models.NotificationCollabInterest, false},
		{"no relationship", stranger, brand, models.NotificationCollabRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := rel.CanNotify(env.db, tt.sender.Profile.ID, tt.recipient.Profile.ID, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAuthorizeFailsClosed(t *testing.T) {
	env := newTestEnv(t)
	rel := env.services.RelationshipService

	sender := testutil.InsertAccount(t, env.db, "sender", models.AccountTypeBrand)
	recipient := testutil.InsertAccount(t, env.db, "recipient", models.AccountTypeInfluencer)
	bare := testutil.InsertUserWithoutProfile(t, env.db, "bare")

	_, err := rel.Authorize(env.db, bare.ID, recipient.User.ID, models.NotificationCollabRequest)
	assert.ErrorIs(t, err, apperrors.ErrSenderProfileNotFound)

	_, err = rel.Authorize(env.db, sender.User.ID, bare.ID, models.NotificationCollabRequest)
	assert.ErrorIs(t, err, apperrors.ErrRecipientNotFound)

	_, err = rel.Authorize(env.db, sender.User.ID, recipient.User.ID, models.NotificationCollabRequest)
	assert.ErrorIs(t, err, apperrors.ErrNoRelationship)

	testutil.InsertMatch(t, env.db, sender, recipient)
	parties, err := rel.Authorize(env.db, sender.User.ID, recipient.User.ID, models.NotificationCollabRequest)
	require.NoError(t, err)
	assert.Equal(t, sender.Profile.ID, parties.Sender.ID)
	assert.Equal(t, recipient.Profile.ID, parties.Recipient.ID)
}

func TestAuthorizeRejectsWhenGateQueryFails(t *testing.T) {
	env := newTestEnv(t)
	rel := env.services.RelationshipService

	author := testutil.InsertAccount(t, env.db, "author", models.AccountTypeBrand)
	applicant := testutil.InsertAccount(t, env.db, "applicant", models.AccountTypeInfluencer)
	post := testutil.InsertPost(t, env.db, author, nil)
	testutil.InsertApplication(t, env.db, post, applicant)

	_, err := rel.Authorize(env.db, applicant.User.ID, author.User.ID, models.NotificationCollabRequest)
	require.NoError(t, err)

	// A later check would allow the pair; the failed match lookup must still reject.
	require.NoError(t, env.db.Migrator().DropTable(&models.Match{}))

	parties, err := rel.Authorize(env.db, applicant.User.ID, author.User.ID, models.NotificationCollabRequest)
	assert.Nil(t, parties)
	status, msg := apperrors.Message(err)
	assert.Equal(t, 500, status)
	assert.Equal(t, apperrors.GenericErrorMessage, msg)
}

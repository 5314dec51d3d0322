package auth

import (
	"context"
	"testing"
	"time"

	"collabex_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	session := Session{UserID: "u-1", ProfileID: "p-1", AccountType: models.AccountTypeBrand}

	token, err := svc.Generate(session)
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestJWTRejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	token, err := svc.Generate(Session{UserID: "u-1"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTService("other", time.Hour).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTService("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("a.b.c")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no user", func(t *testing.T) {
		anonymous, err := svc.Generate(Session{})
		require.NoError(t, err)
		_, err = svc.Verify(anonymous)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))

	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("123456"))
}

func TestRefreshTokensAreUnique(t *testing.T) {
	a, err := NewRefreshToken()
	require.NoError(t, err)
	b, err := NewRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestSessionContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), Session{UserID: "u-1"})
	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", got.UserID)
}

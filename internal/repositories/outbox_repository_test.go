package repositories

import (
	"strings"
	"testing"
	"unicode/utf8"

	"collabex_backend/internal/models"
	"collabex_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc"},
		{"aé", 2, "a"},
		{"日本語", 7, "日本"},
		{"日本語", 2, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		assert.Equal(t, tt.want, got, "truncate(%q, %d)", tt.in, tt.n)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestMarkFailedStoresValidLastError(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOutboxRepository()

	event := &models.OutboxEvent{Kind: models.OutboxKindEmail, Payload: datatypes.JSON(`{}`)}
	require.NoError(t, repo.Enqueue(db, event))

	lastErr := strings.Repeat("x", 999) + "ошибка"
	require.NoError(t, repo.MarkFailed(db, event.ID, 3, lastErr))

	var stored models.OutboxEvent
	require.NoError(t, db.First(&stored, "id = ?", event.ID).Error)
	assert.Equal(t, models.OutboxStatusFailed, stored.Status)
	assert.Equal(t, strings.Repeat("x", 999), stored.LastError)
	assert.True(t, utf8.ValidString(stored.LastError))
}

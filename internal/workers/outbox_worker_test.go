package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestBackoff(t *testing.T) {
	base, max := 5*time.Second, time.Minute

	assert.Equal(t, 5*time.Second, Backoff(base, max, 0))
	assert.Equal(t, 5*time.Second, Backoff(base, max, 1))
	assert.Equal(t, 10*time.Second, Backoff(base, max, 2))
	assert.Equal(t, 40*time.Second, Backoff(base, max, 4))
	assert.Equal(t, time.Minute, Backoff(base, max, 5))
	assert.Equal(t, time.Minute, Backoff(base, max, 60))
}

type outboxFixture struct {
	db     *gorm.DB
	repo   repositories.OutboxRepository
	worker *OutboxWorker
	now    time.Time
}

func newOutboxFixture(t *testing.T) *outboxFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	repo := repositories.NewOutboxRepository()
	f := &outboxFixture{
		db:   db,
		repo: repo,
		now:  time.Now().UTC(),
	}
	f.worker = NewOutboxWorker(db, repo, OutboxConfig{
		BatchSize:   10,
		MaxAttempts: 3,
		BaseBackoff: time.Second,
		MaxBackoff:  time.Minute,
	})
	f.worker.now = func() time.Time { return f.now }
	return f
}

func (f *outboxFixture) enqueue(t *testing.T, kind string) *models.OutboxEvent {
	t.Helper()
	event := &models.OutboxEvent{
		Kind:          kind,
		Payload:       datatypes.JSON(`{"n":1}`),
		NextAttemptAt: f.now.Add(-time.Second),
	}
	require.NoError(t, f.repo.Enqueue(f.db, event))
	return event
}

func (f *outboxFixture) reload(t *testing.T, id string) models.OutboxEvent {
	t.Helper()
	var event models.OutboxEvent
	require.NoError(t, f.db.First(&event, "id = ?", id).Error)
	return event
}

func TestOutboxDeliversAndMarksDone(t *testing.T) {
	f := newOutboxFixture(t)
	var seen []string
	f.worker.Handle("test.ok", func(_ context.Context, _ *gorm.DB, payload []byte) error {
		seen = append(seen, string(payload))
		return nil
	})
	event := f.enqueue(t, "test.ok")

	n, err := f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{`{"n":1}`}, seen)
	assert.Equal(t, models.OutboxStatusDone, f.reload(t, event.ID).Status)

	n, err = f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOutboxRetriesWithBackoffThenFails(t *testing.T) {
	f := newOutboxFixture(t)
	calls := 0
	f.worker.Handle("test.flaky", func(context.Context, *gorm.DB, []byte) error {
		calls++
		return errors.New("smtp timeout")
	})
	event := f.enqueue(t, "test.flaky")

	_, err := f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	got := f.reload(t, event.ID)
	assert.Equal(t, models.OutboxStatusPending, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, "smtp timeout", got.LastError)
	assert.WithinDuration(t, f.now.Add(time.Second), got.NextAttemptAt, time.Millisecond)

	// Not due yet.
	n, err := f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	f.now = f.now.Add(time.Second)
	_, err = f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	got = f.reload(t, event.ID)
	assert.Equal(t, 2, got.Attempts)
	assert.WithinDuration(t, f.now.Add(2*time.Second), got.NextAttemptAt, time.Millisecond)

	f.now = f.now.Add(2 * time.Second)
	_, err = f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	got = f.reload(t, event.ID)
	assert.Equal(t, models.OutboxStatusFailed, got.Status)
	assert.Equal(t, 3, got.Attempts)
	assert.Equal(t, 3, calls)
}

func TestOutboxClientErrorIsPermanent(t *testing.T) {
	f := newOutboxFixture(t)
	f.worker.Handle("test.forbidden", func(context.Context, *gorm.DB, []byte) error {
		return apperrors.ErrNoRelationship
	})
	forbidden := f.enqueue(t, "test.forbidden")
	unknown := f.enqueue(t, "test.unregistered")

	n, err := f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got := f.reload(t, forbidden.ID)
	assert.Equal(t, models.OutboxStatusFailed, got.Status)
	assert.Equal(t, 1, got.Attempts)

	got = f.reload(t, unknown.ID)
	assert.Equal(t, models.OutboxStatusFailed, got.Status)
	assert.Contains(t, got.LastError, "no handler")
}

func TestOutboxServerErrorIsRetried(t *testing.T) {
	f := newOutboxFixture(t)
	f.worker.Handle("test.502", func(context.Context, *gorm.DB, []byte) error {
		return apperrors.ExternalServiceError(errors.New("down"), "email")
	})
	event := f.enqueue(t, "test.502")

	_, err := f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutboxStatusPending, f.reload(t, event.ID).Status)
}

func TestOutboxReleasesStaleClaims(t *testing.T) {
	f := newOutboxFixture(t)
	event := f.enqueue(t, "test.ok")
	require.NoError(t, f.db.Model(&models.OutboxEvent{}).Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"status":     models.OutboxStatusProcessing,
			"updated_at": f.now.Add(-time.Hour),
		}).Error)

	delivered := 0
	f.worker.Handle("test.ok", func(context.Context, *gorm.DB, []byte) error {
		delivered++
		return nil
	})

	_, err := f.worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.Equal(t, models.OutboxStatusDone, f.reload(t, event.ID).Status)
}

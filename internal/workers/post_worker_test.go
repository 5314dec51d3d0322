package workers

import (
	"testing"
	"time"

	"collabex_backend/internal/models"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services"
	"collabex_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostWorkerClosesExpiredPosts(t *testing.T) {
	db := testutil.NewTestDB(t)
	brand := testutil.InsertAccount(t, db, "Brand Co", models.AccountTypeBrand, "fitness")

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(24 * time.Hour)
	expired := testutil.InsertPost(t, db, brand, &past)
	upcoming := testutil.InsertPost(t, db, brand, &future)
	openEnded := testutil.InsertPost(t, db, brand, nil)

	postService := services.NewPostService(
		repositories.NewPostRepository(),
		repositories.NewProfileRepository(),
		nil,
	)
	worker := NewPostWorker(db, postService, 0)
	assert.Equal(t, time.Hour, worker.interval)

	assert.EqualValues(t, 1, worker.RunOnce())
	assert.EqualValues(t, 0, worker.RunOnce())

	status := func(id string) models.PostStatus {
		var post models.CollabPost
		require.NoError(t, db.First(&post, "id = ?", id).Error)
		return post.Status
	}
	assert.Equal(t, models.PostStatusClosed, status(expired.ID))
	assert.Equal(t, models.PostStatusOpen, status(upcoming.ID))
	assert.Equal(t, models.PostStatusOpen, status(openEnded.ID))
}

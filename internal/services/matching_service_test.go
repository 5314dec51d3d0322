package services

import (
	"testing"

	"collabex_backend/internal/models"
	"collabex_backend/internal/services/dto"
	"collabex_backend/internal/testutil"
	"collabex_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutualRightSwipeCreatesMatch(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.MatchingService
	brand := testutil.InsertAccount(t, env.db, "brand", models.AccountTypeBrand)
	creator := testutil.InsertAccount(t, env.db, "creator", models.AccountTypeInfluencer)

	first, err := svc.Swipe(env.db, brand.Session, &dto.SwipeRequest{ProfileID: creator.Profile.ID, Direction: models.SwipeRight})
	require.NoError(t, err)
	assert.False(t, first.Matched)

	_, err = svc.Swipe(env.db, brand.Session, &dto.SwipeRequest{ProfileID: creator.Profile.ID, Direction: models.SwipeLeft})
	assert.ErrorIs(t, err, apperrors.ErrAlreadySwiped)

	second, err := svc.Swipe(env.db, creator.Session, &dto.SwipeRequest{ProfileID: brand.Profile.ID, Direction: models.SwipeRight})
	require.NoError(t, err)
	require.True(t, second.Matched)
	assert.Equal(t, brand.Profile.ID, second.Match.Partner.ID)

	for _, account := range []*testutil.Account{brand, creator} {
		matches, err := svc.ListMatches(env.db, account.Session)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	}

	ok, err := env.services.RelationshipService.CanNotify(env.db, creator.Profile.ID, brand.Profile.ID, models.NotificationCollabRequest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLeftSwipeNeverMatches(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.MatchingService
	a := testutil.InsertAccount(t, env.db, "a", models.AccountTypeBrand)
	b := testutil.InsertAccount(t, env.db, "b", models.AccountTypeInfluencer)

	_, err := svc.Swipe(env.db, a.Session, &dto.SwipeRequest{ProfileID: b.Profile.ID, Direction: models.SwipeLeft})
	require.NoError(t, err)

	resp, err := svc.Swipe(env.db, b.Session, &dto.SwipeRequest{ProfileID: a.Profile.ID, Direction: models.SwipeRight})
	require.NoError(t, err)
	assert.False(t, resp.Matched)

	_, err = svc.Swipe(env.db, a.Session, &dto.SwipeRequest{ProfileID: a.Profile.ID, Direction: models.SwipeRight})
	assert.ErrorIs(t, err, apperrors.ErrCannotTargetSelf)
}

func TestCandidatesSkipSwipedProfiles(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.MatchingService
	viewer := testutil.InsertAccount(t, env.db, "viewer", models.AccountTypeBrand, "fitness")
	swiped := testutil.InsertAccount(t, env.db, "swiped", models.AccountTypeInfluencer, "fitness")
	fresh := testutil.InsertAccount(t, env.db, "fresh", models.AccountTypeInfluencer, "fitness")

	_, err := svc.Swipe(env.db, viewer.Session, &dto.SwipeRequest{ProfileID: swiped.Profile.ID, Direction: models.SwipeLeft})
	require.NoError(t, err)

	candidates, err := svc.Candidates(env.db, viewer.Session, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, fresh.Profile.ID, candidates[0].Profile.ID)
	assert.Equal(t, 55.0, candidates[0].Score)
}

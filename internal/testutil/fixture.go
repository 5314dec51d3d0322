package testutil

import (
	"fmt"
	"testing"
	"time"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Account is a user with its profile and the session a request would carry.
type Account struct {
	User    *models.User
	Profile *models.Profile
	Session auth.Session
}

// InsertAccount creates an onboarded user and profile.
func InsertAccount(t testing.TB, db *gorm.DB, name string, accountType models.AccountType, niches ...string) *Account {
	t.Helper()

	user := &models.User{
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixtu",
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{
		UserID:              user.ID,
		DisplayName:         name,
		AccountType:         accountType,
		Currency:            models.CurrencyUSD,
		OnboardingCompleted: true,
	}
	for _, niche := range niches {
		profile.Niches = append(profile.Niches, models.ProfileNiche{Niche: niche})
	}
	require.NoError(t, db.Create(profile).Error)

	return &Account{
		User:    user,
		Profile: profile,
		Session: auth.Session{
			UserID:      user.ID,
			ProfileID:   profile.ID,
			AccountType: accountType,
		},
	}
}

// InsertUserWithoutProfile creates a bare user.
func InsertUserWithoutProfile(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func InsertMatch(t testing.TB, db *gorm.DB, a, b *Account) *models.Match {
	t.Helper()

	first, second := models.OrderedPair(a.Profile.ID, b.Profile.ID)
	match := &models.Match{ProfileA: first, ProfileB: second}
	require.NoError(t, db.Create(match).Error)
	return match
}

// InsertCollaboration creates a collaboration requested by requester.
func InsertCollaboration(t testing.TB, db *gorm.DB, requester, recipient *Account, status models.CollaborationStatus) *models.Collaboration {
	t.Helper()

	collab := &models.Collaboration{
		ProfileA: requester.Profile.ID,
		ProfileB: recipient.Profile.ID,
		Title:    "Summer campaign",
		Status:   status,
	}
	if status == models.CollaborationStatusCompleted {
		now := time.Now().UTC()
		collab.CompletedAt = &now
	}
	require.NoError(t, db.Create(collab).Error)
	return collab
}

func InsertPost(t testing.TB, db *gorm.DB, author *Account, deadline *time.Time) *models.CollabPost {
	t.Helper()

	post := &models.CollabPost{
		AuthorID:    author.Profile.ID,
		Title:       "Looking for a fitness creator",
		Description: "Three reels over two weeks",
		Niche:       "fitness",
		Deadline:    deadline,
		Status:      models.PostStatusOpen,
	}
	post.SetPlatforms([]string{"instagram"})
	require.NoError(t, db.Create(post).Error)
	return post
}

func InsertApplication(t testing.TB, db *gorm.DB, post *models.CollabPost, applicant *Account) *models.CollabApplication {
	t.Helper()

	app := &models.CollabApplication{
		PostID:      post.ID,
		ApplicantID: applicant.Profile.ID,
		Status:      models.ApplicationStatusPending,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func InsertPlatform(t testing.TB, db *gorm.DB, owner *Account, name, handle, url string) *models.SocialPlatform {
	t.Helper()

	platform := &models.SocialPlatform{
		ProfileID:    owner.Profile.ID,
		PlatformName: name,
		Handle:       handle,
		URL:          url,
	}
	require.NoError(t, db.Create(platform).Error)
	return platform
}

// OutboxEvents returns every outbox row of kind, oldest first.
func OutboxEvents(t testing.TB, db *gorm.DB, kind string) []models.OutboxEvent {
	t.Helper()

	var events []models.OutboxEvent
	require.NoError(t, db.Where("kind = ?", kind).Order("created_at ASC").Find(&events).Error)
	return events
}

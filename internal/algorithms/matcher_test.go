package algorithms

import (
	"testing"

	"collabex_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func profileWith(id string, accountType models.AccountType, niches ...string) models.Profile {
	p := models.Profile{AccountType: accountType}
	p.ID = id
	for _, n := range niches {
		p.Niches = append(p.Niches, models.ProfileNiche{Niche: n})
	}
	return p
}

func TestScoreProfileComplementaryAndNiches(t *testing.T) {
	viewer := profileWith("v", models.AccountTypeBrand, "fitness", "food")
	candidate := profileWith("c", models.AccountTypeInfluencer, "Fitness", "food")

	score, reasons := ScoreProfile(&viewer, &candidate)

	assert.Equal(t, 55.0, score)
	assert.Contains(t, reasons, "Complementary account type")
	assert.Contains(t, reasons, "Shared niches")
}

func TestScoreProfileBonuses(t *testing.T) {
	viewer := profileWith("v", models.AccountTypeInfluencer)
	viewer.Location = "Berlin"
	viewer.AudienceTier = "micro"

	candidate := profileWith("c", models.AccountTypeInfluencer)
	candidate.Location = " berlin "
	candidate.AudienceTier = "micro"
	candidate.OpenToFreeCollabs = true
	candidate.AvatarURL = "https://cdn/avatar.jpg"
	candidate.Bio = "Hi"
	candidate.Platforms = []models.SocialPlatform{{IsVerified: false}, {IsVerified: true}}

	score, reasons := ScoreProfile(&viewer, &candidate)

	// same type 10 + neutral niches 12.5 + location 15 + tier 10 + verified 10 + free 5 + complete 5
	assert.Equal(t, 67.5, score)
	assert.Contains(t, reasons, "Same location")
	assert.Contains(t, reasons, "Verified social accounts")
	assert.Contains(t, reasons, "Open to free collaborations")
	assert.NotContains(t, reasons, "Shared niches")
}

func TestRankProfilesStableOrder(t *testing.T) {
	viewer := profileWith("v", models.AccountTypeBrand, "tech")
	candidates := []models.Profile{
		profileWith("a", models.AccountTypeBrand),
		profileWith("b", models.AccountTypeInfluencer, "tech"),
		profileWith("c", models.AccountTypeBrand),
	}

	ranked := RankProfiles(&viewer, candidates)

	ids := []string{ranked[0].ProfileID, ranked[1].ProfileID, ranked[2].ProfileID}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
	assert.Equal(t, ranked[1].Score, ranked[2].Score)
}

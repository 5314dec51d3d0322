package algorithms

import (
	"sort"
	"strings"

	"collabex_backend/internal/models"
)

// ScoreProfile rates how good a collaboration partner candidate is for viewer (0-100).
func ScoreProfile(viewer, candidate *models.Profile) (float64, []string) {
	score := 0.0
	reasons := []string{}

	// Influencer <-> brand pairs (30 points)
	if viewer.AccountType != "" && candidate.AccountType != "" {
		if viewer.AccountType != candidate.AccountType {
			score += 30
			reasons = append(reasons, "Complementary account type")
		} else {
			score += 10
		}
	}

	// Niche overlap (25 points)
	nicheScore := calculateNicheOverlap(viewer.NicheNames(), candidate.NicheNames())
	score += nicheScore
	if nicheScore > 12.5 {
		reasons = append(reasons, "Shared niches")
	}

	// Location (15 points)
	if viewer.Location != "" && strings.EqualFold(strings.TrimSpace(viewer.Location), strings.TrimSpace(candidate.Location)) {
		score += 15
		reasons = append(reasons, "Same location")
	}

	// Audience tier (10 points)
	if viewer.AudienceTier != "" && viewer.AudienceTier == candidate.AudienceTier {
		score += 10
		reasons = append(reasons, "Similar audience size")
	}

	// Verified platforms (10 points)
	for _, p := range candidate.Platforms {
		if p.IsVerified {
			score += 10
			reasons = append(reasons, "Verified social accounts")
			break
		}
	}

	// Free collaborations (5 points)
	if candidate.OpenToFreeCollabs {
		score += 5
		reasons = append(reasons, "Open to free collaborations")
	}

	// Profile completeness (5 points)
	if candidate.AvatarURL != "" && candidate.Bio != "" {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}

// RankProfiles orders candidates by score, keeping input order on ties.
func RankProfiles(viewer *models.Profile, candidates []models.Profile) []models.CandidateScore {
	scored := make([]models.CandidateScore, 0, len(candidates))
	for i := range candidates {
		score, reasons := ScoreProfile(viewer, &candidates[i])
		scored = append(scored, models.CandidateScore{
			ProfileID: candidates[i].ID,
			Score:     score,
			Reasons:   reasons,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// calculateNicheOverlap returns 0-25 points.
func calculateNicheOverlap(viewerNiches, candidateNiches []string) float64 {
	if len(viewerNiches) == 0 {
		return 12.5
	}

	matches := 0
	for _, vn := range viewerNiches {
		for _, cn := range candidateNiches {
			if strings.EqualFold(vn, cn) {
				matches++
				break
			}
		}
	}

	overlapPercent := float64(matches) / float64(len(viewerNiches))
	return overlapPercent * 25.0
}

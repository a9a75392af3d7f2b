package service

import "github.com/edutrack/activity-api/internal/models"

// Tiers are evaluated high to low; the first qualifying tier the student does
// not already hold wins, and at most one badge is awarded per evaluation pass.
var badgeThresholds = []struct {
	Tier     models.BadgeTier
	MinScore int
}{
	{Tier: models.BadgeTierGold, MinScore: 500},
	{Tier: models.BadgeTierSilver, MinScore: 300},
	{Tier: models.BadgeTierBronze, MinScore: 100},
}

// EvaluateBadge returns the single badge tier newly earned at the given
// cumulative score, or false when no new tier applies.
func EvaluateBadge(activityScore int, held []models.BadgeTier) (models.BadgeTier, bool) {
	heldSet := make(map[models.BadgeTier]struct{}, len(held))
	for _, tier := range held {
		heldSet[tier] = struct{}{}
	}

	for _, threshold := range badgeThresholds {
		if activityScore < threshold.MinScore {
			continue
		}
		if _, ok := heldSet[threshold.Tier]; ok {
			continue
		}
		return threshold.Tier, true
	}

	return "", false
}

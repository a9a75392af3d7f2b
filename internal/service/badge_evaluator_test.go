package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/service"
)

func TestEvaluateBadgeThresholds(t *testing.T) {
	cases := []struct {
		name     string
		score    int
		held     []models.BadgeTier
		expected models.BadgeTier
		earned   bool
	}{
		{name: "below bronze earns nothing", score: 99, earned: false},
		{name: "bronze at threshold", score: 100, expected: models.BadgeTierBronze, earned: true},
		{name: "silver at threshold", score: 300, expected: models.BadgeTierSilver, earned: true},
		{name: "gold at threshold", score: 500, expected: models.BadgeTierGold, earned: true},
		{name: "highest qualifying tier wins", score: 550, expected: models.BadgeTierGold, earned: true},
		{
			name:     "held gold falls through to silver",
			score:    600,
			held:     []models.BadgeTier{models.BadgeTierGold},
			expected: models.BadgeTierSilver,
			earned:   true,
		},
		{
			name:   "all tiers held earns nothing",
			score:  1000,
			held:   []models.BadgeTier{models.BadgeTierBronze, models.BadgeTierSilver, models.BadgeTierGold},
			earned: false,
		},
		{
			name:     "held bronze crossing silver",
			score:    320,
			held:     []models.BadgeTier{models.BadgeTierBronze},
			expected: models.BadgeTierSilver,
			earned:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier, earned := service.EvaluateBadge(tc.score, tc.held)
			require.Equal(t, tc.earned, earned)
			if tc.earned {
				require.Equal(t, tc.expected, tier)
			}
		})
	}
}

func TestEvaluateBadgeAwardsAtMostOnePerPass(t *testing.T) {
	// Crossing several thresholds at once still only yields the top tier;
	// the next pass picks up the remaining ones.
	tier, earned := service.EvaluateBadge(700, nil)
	require.True(t, earned)
	require.Equal(t, models.BadgeTierGold, tier)

	tier, earned = service.EvaluateBadge(700, []models.BadgeTier{tier})
	require.True(t, earned)
	require.Equal(t, models.BadgeTierSilver, tier)
}

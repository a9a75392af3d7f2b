package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/service"
)

func TestCalculateScore(t *testing.T) {
	cases := []struct {
		name        string
		kind        models.ActivityType
		level       models.ActivityLevel
		achievement models.AchievementType
		duration    int
		expected    int
	}{
		{
			name:        "internship with winner achievement and duration bonus",
			kind:        models.ActivityTypeInternship,
			level:       models.ActivityLevelCollege,
			achievement: models.AchievementWinner,
			duration:    21,
			expected:    41,
		},
		{
			name:        "national research publication",
			kind:        models.ActivityTypeResearch,
			level:       models.ActivityLevelNational,
			achievement: models.AchievementPublication,
			duration:    0,
			expected:    65,
		},
		{
			name:        "plain department seminar",
			kind:        models.ActivityTypeSeminar,
			level:       models.ActivityLevelDepartment,
			achievement: models.AchievementNone,
			duration:    0,
			expected:    5,
		},
		{
			name:        "international publication rounds half up",
			kind:        models.ActivityTypePublication,
			level:       models.ActivityLevelInternational,
			achievement: models.AchievementPublication,
			duration:    0,
			expected:    88,
		},
		{
			name:        "long internship duration bonus is capped",
			kind:        models.ActivityTypeInternship,
			level:       models.ActivityLevelUniversity,
			achievement: models.AchievementNone,
			duration:    140,
			expected:    33,
		},
		{
			name:        "workshop earns no duration bonus",
			kind:        models.ActivityTypeWorkshop,
			level:       models.ActivityLevelCollege,
			achievement: models.AchievementParticipation,
			duration:    30,
			expected:    13,
		},
		{
			name:        "national competition winner",
			kind:        models.ActivityTypeCompetition,
			level:       models.ActivityLevelNational,
			achievement: models.AchievementWinner,
			duration:    0,
			expected:    44,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.CalculateScore(tc.kind, tc.level, tc.achievement, tc.duration)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestCalculateScoreDeterministic(t *testing.T) {
	first := service.CalculateScore(models.ActivityTypeProject, models.ActivityLevelState, models.AchievementFinalist, 42)
	second := service.CalculateScore(models.ActivityTypeProject, models.ActivityLevelState, models.AchievementFinalist, 42)
	require.Equal(t, first, second)
}

func TestCalculateScoreNeverNegative(t *testing.T) {
	for kind := range map[models.ActivityType]struct{}{
		models.ActivityTypeAcademic: {}, models.ActivityTypeOther: {}, models.ActivityTypeSports: {},
	} {
		score := service.CalculateScore(kind, models.ActivityLevelDepartment, models.AchievementNone, 0)
		require.GreaterOrEqual(t, score, 0)
	}
}

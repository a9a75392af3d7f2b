package service

import (
	"math"

	"github.com/edutrack/activity-api/internal/models"
)

// Base points per activity type. Unknown values default to defaultBasePoints;
// the parse layer rejects unknown strings, so the default only guards the zero value.
var activityBasePoints = map[models.ActivityType]int{
	models.ActivityTypeAcademic:      10,
	models.ActivityTypeCertification: 15,
	models.ActivityTypeInternship:    15,
	models.ActivityTypeWorkshop:      8,
	models.ActivityTypeSeminar:       5,
	models.ActivityTypeEvent:         5,
	models.ActivityTypeCompetition:   12,
	models.ActivityTypeAchievement:   15,
	models.ActivityTypeProject:       15,
	models.ActivityTypeSports:        10,
	models.ActivityTypeCultural:      8,
	models.ActivityTypeTechnical:     12,
	models.ActivityTypeSocialService: 10,
	models.ActivityTypeResearch:      20,
	models.ActivityTypePublication:   25,
	models.ActivityTypeOther:         5,
}

var levelMultipliers = map[models.ActivityLevel]float64{
	models.ActivityLevelDepartment:    1.0,
	models.ActivityLevelCollege:       1.2,
	models.ActivityLevelUniversity:    1.5,
	models.ActivityLevelState:         1.7,
	models.ActivityLevelNational:      2.0,
	models.ActivityLevelInternational: 2.5,
}

var achievementBonus = map[models.AchievementType]int{
	models.AchievementWinner:        20,
	models.AchievementRunnerUp:      15,
	models.AchievementFinalist:      10,
	models.AchievementPublication:   25,
	models.AchievementCertificate:   5,
	models.AchievementParticipation: 3,
	models.AchievementNone:          0,
}

const (
	defaultBasePoints = 5
	durationBonusCap  = 10
)

// CalculateScore derives the activity score from its scoreable attributes.
// Deterministic and idempotent: the same inputs always yield the same score.
func CalculateScore(activityType models.ActivityType, level models.ActivityLevel, achievement models.AchievementType, durationDays int) int {
	base, ok := activityBasePoints[activityType]
	if !ok {
		base = defaultBasePoints
	}

	multiplier, ok := levelMultipliers[level]
	if !ok {
		multiplier = 1.0
	}

	score := float64(base)*multiplier + float64(achievementBonus[achievement])

	// Long internships and projects earn a duration bonus, capped so
	// multi-month engagements do not dominate the scale.
	if (activityType == models.ActivityTypeInternship || activityType == models.ActivityTypeProject) && durationDays > 0 {
		score += math.Min(float64(durationDays)/7, durationBonusCap)
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	return rounded
}

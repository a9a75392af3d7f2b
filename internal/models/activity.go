package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ActivityStatus tracks an activity through the review workflow.
type ActivityStatus string

const (
	// ActivityStatusPending indicates the activity awaits review.
	ActivityStatusPending ActivityStatus = "pending"
	// ActivityStatusUnderReview indicates a reviewer has picked up the activity.
	ActivityStatusUnderReview ActivityStatus = "under-review"
	// ActivityStatusApproved indicates the activity was accepted and scored.
	ActivityStatusApproved ActivityStatus = "approved"
	// ActivityStatusRejected indicates the activity was declined.
	ActivityStatusRejected ActivityStatus = "rejected"
)

// ParseActivityStatus validates a raw status value.
func ParseActivityStatus(value string) (ActivityStatus, error) {
	status := ActivityStatus(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case ActivityStatusPending, ActivityStatusUnderReview, ActivityStatusApproved, ActivityStatusRejected:
		return status, nil
	}
	return "", fmt.Errorf("unknown activity status %q", value)
}

// IsTerminal reports whether the status ends the review workflow.
func (s ActivityStatus) IsTerminal() bool {
	return s == ActivityStatusApproved || s == ActivityStatusRejected
}

// ActivityType classifies what kind of accomplishment was submitted.
type ActivityType string

const (
	ActivityTypeAcademic      ActivityType = "academic"
	ActivityTypeCertification ActivityType = "certification"
	ActivityTypeInternship    ActivityType = "internship"
	ActivityTypeWorkshop      ActivityType = "workshop"
	ActivityTypeSeminar       ActivityType = "seminar"
	ActivityTypeEvent         ActivityType = "event"
	ActivityTypeCompetition   ActivityType = "competition"
	ActivityTypeAchievement   ActivityType = "achievement"
	ActivityTypeProject       ActivityType = "project"
	ActivityTypeSports        ActivityType = "sports"
	ActivityTypeCultural      ActivityType = "cultural"
	ActivityTypeTechnical     ActivityType = "technical"
	ActivityTypeSocialService ActivityType = "social-service"
	ActivityTypeResearch      ActivityType = "research"
	ActivityTypePublication   ActivityType = "publication"
	ActivityTypeOther         ActivityType = "other"
)

var activityTypes = map[ActivityType]struct{}{
	ActivityTypeAcademic:      {},
	ActivityTypeCertification: {},
	ActivityTypeInternship:    {},
	ActivityTypeWorkshop:      {},
	ActivityTypeSeminar:       {},
	ActivityTypeEvent:         {},
	ActivityTypeCompetition:   {},
	ActivityTypeAchievement:   {},
	ActivityTypeProject:       {},
	ActivityTypeSports:        {},
	ActivityTypeCultural:      {},
	ActivityTypeTechnical:     {},
	ActivityTypeSocialService: {},
	ActivityTypeResearch:      {},
	ActivityTypePublication:   {},
	ActivityTypeOther:         {},
}

// ParseActivityType validates a raw type value.
func ParseActivityType(value string) (ActivityType, error) {
	parsed := ActivityType(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := activityTypes[parsed]; ok {
		return parsed, nil
	}
	return "", fmt.Errorf("unknown activity type %q", value)
}

// ActivityCategory groups activities by curriculum relation.
type ActivityCategory string

const (
	ActivityCategoryCurricular      ActivityCategory = "curricular"
	ActivityCategoryCoCurricular    ActivityCategory = "co-curricular"
	ActivityCategoryExtraCurricular ActivityCategory = "extra-curricular"
)

// ParseActivityCategory validates a raw category value.
func ParseActivityCategory(value string) (ActivityCategory, error) {
	category := ActivityCategory(strings.ToLower(strings.TrimSpace(value)))
	switch category {
	case ActivityCategoryCurricular, ActivityCategoryCoCurricular, ActivityCategoryExtraCurricular:
		return category, nil
	}
	return "", fmt.Errorf("unknown activity category %q", value)
}

// ActivityLevel describes the scope at which the activity took place.
type ActivityLevel string

const (
	ActivityLevelDepartment    ActivityLevel = "department"
	ActivityLevelCollege       ActivityLevel = "college"
	ActivityLevelUniversity    ActivityLevel = "university"
	ActivityLevelState         ActivityLevel = "state"
	ActivityLevelNational      ActivityLevel = "national"
	ActivityLevelInternational ActivityLevel = "international"
)

// ParseActivityLevel validates a raw level value.
func ParseActivityLevel(value string) (ActivityLevel, error) {
	level := ActivityLevel(strings.ToLower(strings.TrimSpace(value)))
	switch level {
	case ActivityLevelDepartment, ActivityLevelCollege, ActivityLevelUniversity,
		ActivityLevelState, ActivityLevelNational, ActivityLevelInternational:
		return level, nil
	}
	return "", fmt.Errorf("unknown activity level %q", value)
}

// AchievementType records the outcome the student attained.
type AchievementType string

const (
	AchievementParticipation AchievementType = "participation"
	AchievementWinner        AchievementType = "winner"
	AchievementRunnerUp      AchievementType = "runner-up"
	AchievementFinalist      AchievementType = "finalist"
	AchievementCertificate   AchievementType = "certificate"
	AchievementPublication   AchievementType = "publication"
	AchievementNone          AchievementType = "none"
)

// ParseAchievementType validates a raw achievement value.
func ParseAchievementType(value string) (AchievementType, error) {
	achievement := AchievementType(strings.ToLower(strings.TrimSpace(value)))
	switch achievement {
	case AchievementParticipation, AchievementWinner, AchievementRunnerUp,
		AchievementFinalist, AchievementCertificate, AchievementPublication, AchievementNone:
		return achievement, nil
	}
	return "", fmt.Errorf("unknown achievement type %q", value)
}

// Activity represents one extracurricular or academic accomplishment submitted by a student.
type Activity struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	StudentID       uint             `gorm:"not null;index" json:"student_id"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Type            ActivityType     `gorm:"size:32;not null;index" json:"type"`
	Category        ActivityCategory `gorm:"size:32;not null" json:"category"`
	Level           ActivityLevel    `gorm:"size:32;not null" json:"level"`
	AchievementType AchievementType  `gorm:"size:32;not null;default:none" json:"achievement_type"`
	StartDate       time.Time        `gorm:"not null" json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	Duration        int              `gorm:"not null;default:0" json:"duration"`
	Score           int              `gorm:"not null;default:0" json:"score"`
	Credits         int              `gorm:"not null;default:0" json:"credits"`
	Status          ActivityStatus   `gorm:"size:16;not null;default:pending;index" json:"status"`
	ReviewedBy      *uint            `json:"reviewed_by"`
	ReviewedAt      *time.Time       `json:"reviewed_at"`
	Remarks         string           `gorm:"type:text" json:"remarks"`
	IsVerified      bool             `gorm:"not null;default:false" json:"is_verified"`
	Documents       datatypes.JSON   `gorm:"type:json" json:"documents"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Student         Student          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// DocumentMeta carries metadata for an externally stored supporting document.
type DocumentMeta struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// EditableByStudent reports whether the owning student may still modify the
// activity. Only pending activities are editable; anything a reviewer has
// touched is locked for the student.
func (a Activity) EditableByStudent() bool {
	return a.Status == ActivityStatusPending
}

// DeriveDuration computes the activity duration in whole days.
// Returns 0 unless both dates are present.
func DeriveDuration(start time.Time, end *time.Time) int {
	if start.IsZero() || end == nil || end.IsZero() {
		return 0
	}
	days := math.Ceil(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

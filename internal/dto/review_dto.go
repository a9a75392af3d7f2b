package dto

import (
	"time"

	"github.com/edutrack/activity-api/internal/models"
)

// ReviewRequest describes a faculty decision on a submitted activity.
type ReviewRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected"`
	Remarks string `json:"remarks" validate:"omitempty,max=2000"`
	Credits *int   `json:"credits" validate:"omitempty,gte=0,lte=20"`
}

// ReviewResponse reports the outcome of a review, including any badge awarded.
type ReviewResponse struct {
	Activity     ActivityResponse `json:"activity"`
	AwardedBadge *BadgeResponse   `json:"awarded_badge,omitempty"`
}

// BadgeResponse serializes an awarded badge.
type BadgeResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Tier      string    `json:"tier"`
	AwardedAt time.Time `json:"awarded_at"`
}

// NewBadgeResponse converts a Badge model into a DTO.
func NewBadgeResponse(model models.Badge) BadgeResponse {
	return BadgeResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		Tier:      string(model.Tier),
		AwardedAt: model.AwardedAt,
	}
}

// StudentProfileResponse exposes a student's running aggregates and badges.
type StudentProfileResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Department    string          `json:"department"`
	ActivityScore int             `json:"activity_score"`
	TotalCredits  int             `json:"total_credits"`
	Badges        []BadgeResponse `json:"badges"`
}

// NewStudentProfileResponse converts a Student model into a DTO.
func NewStudentProfileResponse(model models.Student) StudentProfileResponse {
	badges := make([]BadgeResponse, 0, len(model.Badges))
	for _, badge := range model.Badges {
		badges = append(badges, NewBadgeResponse(badge))
	}

	return StudentProfileResponse{
		ID:            model.ID,
		Name:          model.Name,
		Department:    model.Department,
		ActivityScore: model.ActivityScore,
		TotalCredits:  model.TotalCredits,
		Badges:        badges,
	}
}

package dto

import (
	"encoding/json"
	"time"

	"github.com/edutrack/activity-api/internal/models"
)

// DocumentMetaPayload carries metadata for an externally stored document.
type DocumentMetaPayload struct {
	Name     string `json:"name" validate:"required,max=255"`
	URL      string `json:"url" validate:"required,url"`
	MimeType string `json:"mime_type" validate:"omitempty,max=128"`
}

// ActivityCreateRequest describes the payload for submitting a new activity.
type ActivityCreateRequest struct {
	Title           string                `json:"title" validate:"required,min=3,max=255"`
	Description     string                `json:"description" validate:"omitempty,max=4000"`
	Type            string                `json:"type" validate:"required"`
	Category        string                `json:"category" validate:"required"`
	Level           string                `json:"level" validate:"required"`
	AchievementType string                `json:"achievement_type" validate:"omitempty"`
	StartDate       time.Time             `json:"start_date" validate:"required"`
	EndDate         *time.Time            `json:"end_date"`
	Documents       []DocumentMetaPayload `json:"documents" validate:"omitempty,dive"`
}

// ActivityUpdateRequest describes the payload for editing a pending activity.
// Nil fields are left untouched.
type ActivityUpdateRequest struct {
	Title           *string               `json:"title" validate:"omitempty,min=3,max=255"`
	Description     *string               `json:"description" validate:"omitempty,max=4000"`
	Type            *string               `json:"type"`
	Category        *string               `json:"category"`
	Level           *string               `json:"level"`
	AchievementType *string               `json:"achievement_type"`
	StartDate       *time.Time            `json:"start_date"`
	EndDate         *time.Time            `json:"end_date"`
	Documents       []DocumentMetaPayload `json:"documents" validate:"omitempty,dive"`
}

// ActivityFilter describes query string filters for listing activities.
type ActivityFilter struct {
	Status   *string `query:"status"`
	Type     *string `query:"type"`
	Category *string `query:"category"`
	Limit    int     `query:"limit"`
	Offset   int     `query:"offset"`
}

// ActivityResponse is returned to API clients when viewing activities.
type ActivityResponse struct {
	ID              uint                  `json:"id"`
	StudentID       uint                  `json:"student_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Type            string                `json:"type"`
	Category        string                `json:"category"`
	Level           string                `json:"level"`
	AchievementType string                `json:"achievement_type"`
	StartDate       time.Time             `json:"start_date"`
	EndDate         *time.Time            `json:"end_date"`
	Duration        int                   `json:"duration"`
	Score           int                   `json:"score"`
	Credits         int                   `json:"credits"`
	Status          string                `json:"status"`
	ReviewedBy      *uint                 `json:"reviewed_by"`
	ReviewedAt      *time.Time            `json:"reviewed_at"`
	Remarks         string                `json:"remarks"`
	IsVerified      bool                  `json:"is_verified"`
	Documents       []DocumentMetaPayload `json:"documents"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Student         StudentLite           `json:"student"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// NewActivityResponse converts an Activity model into a DTO.
func NewActivityResponse(model models.Activity) ActivityResponse {
	response := ActivityResponse{
		ID:              model.ID,
		StudentID:       model.StudentID,
		Title:           model.Title,
		Description:     model.Description,
		Type:            string(model.Type),
		Category:        string(model.Category),
		Level:           string(model.Level),
		AchievementType: string(model.AchievementType),
		StartDate:       model.StartDate,
		EndDate:         model.EndDate,
		Duration:        model.Duration,
		Score:           model.Score,
		Credits:         model.Credits,
		Status:          string(model.Status),
		ReviewedBy:      model.ReviewedBy,
		ReviewedAt:      model.ReviewedAt,
		Remarks:         model.Remarks,
		IsVerified:      model.IsVerified,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}

	if len(model.Documents) > 0 {
		var docs []DocumentMetaPayload
		if err := json.Unmarshal(model.Documents, &docs); err == nil {
			response.Documents = docs
		}
	}

	if model.Student.ID != 0 {
		response.Student = StudentLite{
			ID:         model.Student.ID,
			Name:       model.Student.Name,
			Department: model.Student.Department,
		}
	}

	return response
}

// NewActivityResponseSlice converts activity models into DTOs.
func NewActivityResponseSlice(activities []models.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewActivityResponse(activity))
	}

	return responses
}

package dto

import (
	"time"

	"github.com/edutrack/activity-api/internal/models"
)

// NotificationCreateRequest describes the payload for dispatching a notification.
type NotificationCreateRequest struct {
	UserID     uint   `json:"user_id" validate:"required,gt=0"`
	SenderID   *uint  `json:"sender_id"`
	Type       string `json:"type" validate:"required,oneof=activity-submitted activity-approved activity-rejected badge-earned generic"`
	Title      string `json:"title" validate:"omitempty,max=255"`
	Message    string `json:"message" validate:"required"`
	ActivityID *uint  `json:"activity_id"`
	Priority   string `json:"priority" validate:"omitempty,oneof=low normal high"`
}

// NotificationResponse is streamed and listed to API clients.
type NotificationResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	SenderID   *uint     `json:"sender_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	ActivityID *uint     `json:"activity_id"`
	Priority   string    `json:"priority"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNotificationResponse converts a Notification model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         model.ID,
		UserID:     model.UserID,
		SenderID:   model.SenderID,
		Type:       string(model.Type),
		Title:      model.Title,
		Message:    model.Message,
		ActivityID: model.ActivityID,
		Priority:   string(model.Priority),
		Read:       model.Read,
		CreatedAt:  model.CreatedAt,
	}
}

// NewNotificationResponseSlice converts notification models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}

	return responses
}

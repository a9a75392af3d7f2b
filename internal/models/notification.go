package models

import "time"

// NotificationType enumerates the events a notification can describe.
type NotificationType string

const (
	NotificationActivitySubmitted NotificationType = "activity-submitted"
	NotificationActivityApproved  NotificationType = "activity-approved"
	NotificationActivityRejected  NotificationType = "activity-rejected"
	NotificationBadgeEarned       NotificationType = "badge-earned"
	NotificationGeneric           NotificationType = "generic"
)

// NotificationPriority orders notifications for display.
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// Notification represents a push notification targeted to a specific user.
// Immutable once created except for the read flag; purged after the retention window.
type Notification struct {
	ID         uint                 `gorm:"primaryKey" json:"id"`
	UserID     uint                 `gorm:"not null;index" json:"user_id"`
	SenderID   *uint                `json:"sender_id"`
	Type       NotificationType     `gorm:"size:32;not null;default:generic" json:"type"`
	Title      string               `gorm:"size:255" json:"title"`
	Message    string               `gorm:"type:text" json:"message"`
	ActivityID *uint                `gorm:"index" json:"activity_id"`
	Priority   NotificationPriority `gorm:"size:16;not null;default:normal" json:"priority"`
	Read       bool                 `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

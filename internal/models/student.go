package models

import "time"

// Student represents a learner whose approved activities accumulate score and credits.
type Student struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RollNumber    string    `gorm:"size:32;uniqueIndex" json:"roll_number"`
	Department    string    `gorm:"size:64;not null;index" json:"department"`
	ActivityScore int       `gorm:"not null;default:0" json:"activity_score"`
	TotalCredits  int       `gorm:"not null;default:0" json:"total_credits"`
	Badges        []Badge   `json:"badges"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

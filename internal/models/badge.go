package models

import (
	"fmt"
	"strings"
	"time"
)

// BadgeTier identifies the badge level a student has earned.
type BadgeTier string

const (
	BadgeTierBronze BadgeTier = "bronze"
	BadgeTierSilver BadgeTier = "silver"
	BadgeTierGold   BadgeTier = "gold"
)

// ParseBadgeTier validates a raw tier value.
func ParseBadgeTier(value string) (BadgeTier, error) {
	tier := BadgeTier(strings.ToLower(strings.TrimSpace(value)))
	switch tier {
	case BadgeTierBronze, BadgeTierSilver, BadgeTierGold:
		return tier, nil
	}
	return "", fmt.Errorf("unknown badge tier %q", value)
}

// Badge records a tier awarded to a student. A student holds at most one badge per tier.
type Badge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_badge_student_tier" json:"student_id"`
	Tier      BadgeTier `gorm:"size:16;not null;uniqueIndex:idx_badge_student_tier" json:"tier"`
	AwardedAt time.Time `gorm:"not null" json:"awarded_at"`
	CreatedAt time.Time `json:"created_at"`
}

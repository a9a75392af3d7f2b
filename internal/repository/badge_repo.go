package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/models"
)

// BadgeRepository handles persistence for badge awards.
type BadgeRepository interface {
	ListTiers(ctx context.Context, studentID uint) ([]models.BadgeTier, error)
	HasTier(ctx context.Context, studentID uint, tier models.BadgeTier) (bool, error)
	Create(ctx context.Context, badge *models.Badge) error
}

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository constructs a repository backed by GORM.
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) ListTiers(ctx context.Context, studentID uint) ([]models.BadgeTier, error) {
	var tiers []models.BadgeTier
	if err := r.db.WithContext(ctx).
		Model(&models.Badge{}).
		Where("student_id = ?", studentID).
		Pluck("tier", &tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *badgeRepository) HasTier(ctx context.Context, studentID uint, tier models.BadgeTier) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Badge{}).
		Where("student_id = ? AND tier = ?", studentID, tier).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *badgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	return r.db.WithContext(ctx).Create(badge).Error
}

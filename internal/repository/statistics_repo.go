package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/models"
)

// StatisticsScope narrows an aggregation query to a student or department,
// optionally bounded by creation date.
type StatisticsScope struct {
	StudentID  *uint
	Department *string
	From       *time.Time
	To         *time.Time
}

// StatisticsRepository supplies activity data for read-only aggregations.
type StatisticsRepository interface {
	ListScoped(ctx context.Context, scope StatisticsScope) ([]models.Activity, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository constructs the statistics repository.
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) ListScoped(ctx context.Context, scope StatisticsScope) ([]models.Activity, error) {
	query := r.db.WithContext(ctx).Model(&models.Activity{})

	if scope.StudentID != nil {
		query = query.Where("activities.student_id = ?", *scope.StudentID)
	}
	if scope.Department != nil && *scope.Department != "" {
		query = query.
			Joins("JOIN students ON students.id = activities.student_id").
			Where("students.department = ?", *scope.Department)
	}
	if scope.From != nil {
		query = query.Where("activities.created_at >= ?", *scope.From)
	}
	if scope.To != nil {
		query = query.Where("activities.created_at <= ?", *scope.To)
	}

	var activities []models.Activity
	if err := query.Order("activities.created_at ASC").Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

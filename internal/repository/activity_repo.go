package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/models"
)

// ActivityListFilter narrows activity listings.
type ActivityListFilter struct {
	Status   *models.ActivityStatus
	Type     *models.ActivityType
	Category *models.ActivityCategory
	Limit    int
	Offset   int
}

// ActivityRepository handles persistence for activity entities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uint) (models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uint) error
	ListByStudent(ctx context.Context, studentID uint, filter ActivityListFilter) ([]models.Activity, int64, error)
	ListPendingByDepartment(ctx context.Context, department string, limit, offset int) ([]models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs a repository backed by GORM.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).Preload("Student").First(&activity, id).Error; err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Omit("Student").Save(activity).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Activity{}, id).Error
}

func (r *activityRepository) ListByStudent(ctx context.Context, studentID uint, filter ActivityListFilter) ([]models.Activity, int64, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := r.db.WithContext(ctx).Model(&models.Activity{}).Where("student_id = ?", studentID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []models.Activity
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *activityRepository) ListPendingByDepartment(ctx context.Context, department string, limit, offset int) ([]models.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := r.db.WithContext(ctx).
		Joins("JOIN students ON students.id = activities.student_id").
		Where("activities.status IN ?", []models.ActivityStatus{models.ActivityStatusPending, models.ActivityStatusUnderReview}).
		Preload("Student")
	if department != "" {
		query = query.Where("students.department = ?", department)
	}

	var activities []models.Activity
	if err := query.
		Order("activities.created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

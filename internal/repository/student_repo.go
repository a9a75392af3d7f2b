package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/models"
)

// StudentRepository handles persistence for student aggregates.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (models.Student, error)
	IncrementAggregates(ctx context.Context, id uint, score, credits int) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a repository backed by GORM.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("Badges").First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// IncrementAggregates applies the score and credit deltas as a SQL-side
// increment so concurrent approvals never lose updates.
func (r *studentRepository) IncrementAggregates(ctx context.Context, id uint, score, credits int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"activity_score": gorm.Expr("activity_score + ?", score),
			"total_credits":  gorm.Expr("total_credits + ?", credits),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

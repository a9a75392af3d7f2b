package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/repository"
)

// StudentService exposes the student's own profile: running aggregates and
// held badges.
type StudentService interface {
	Profile(ctx context.Context, studentID uint) (dto.StudentProfileResponse, error)
}

type studentService struct {
	students repository.StudentRepository
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewStudentService constructs the student profile service.
func NewStudentService(students repository.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		students: students,
		logger:   logger.With().Str("component", "student_service").Logger(),
		tracer:   otel.Tracer("github.com/edutrack/activity-api/internal/service/student"),
	}
}

func (s *studentService) Profile(ctx context.Context, studentID uint) (dto.StudentProfileResponse, error) {
	ctx, span := s.tracer.Start(ctx, "students.profile", trace.WithAttributes(
		attribute.Int64("student.id", int64(studentID)),
	))
	defer span.End()

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "student_not_found")
			return dto.StudentProfileResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		return dto.StudentProfileResponse{}, err
	}

	return dto.NewStudentProfileResponse(student), nil
}

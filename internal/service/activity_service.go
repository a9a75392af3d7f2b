package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/repository"
)

// ActivityService governs the student-facing activity lifecycle: submission,
// edits while pending, deletion, and the reviewer queue.
type ActivityService interface {
	Submit(ctx context.Context, studentID uint, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
	Update(ctx context.Context, activityID, studentID uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error)
	Delete(ctx context.Context, activityID, studentID uint) error
	Get(ctx context.Context, activityID uint) (dto.ActivityResponse, error)
	ListByStudent(ctx context.Context, studentID uint, filter dto.ActivityFilter) ([]dto.ActivityResponse, int64, error)
	ListReviewQueue(ctx context.Context, reviewerID uint, limit, offset int) ([]dto.ActivityResponse, error)
}

type activityService struct {
	activities repository.ActivityRepository
	students   repository.StudentRepository
	users      repository.UserRepository
	notifier   Notifier
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewActivityService constructs the activity lifecycle service.
func NewActivityService(activities repository.ActivityRepository, students repository.StudentRepository, users repository.UserRepository, notifier Notifier, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		activities: activities,
		students:   students,
		users:      users,
		notifier:   notifier,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "activity_service").Logger(),
		tracer:     otel.Tracer("github.com/edutrack/activity-api/internal/service/activity"),
	}
}

func (s *activityService) Submit(ctx context.Context, studentID uint, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "activities.submit", trace.WithAttributes(
		attribute.Int64("activity.student_id", int64(studentID)),
		attribute.String("activity.type", payload.Type),
	))
	defer span.End()

	activityType, err := models.ParseActivityType(payload.Type)
	if err != nil {
		return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	category, err := models.ParseActivityCategory(payload.Category)
	if err != nil {
		return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	level, err := models.ParseActivityLevel(payload.Level)
	if err != nil {
		return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	achievement := models.AchievementNone
	if strings.TrimSpace(payload.AchievementType) != "" {
		achievement, err = models.ParseAchievementType(payload.AchievementType)
		if err != nil {
			return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "student_not_found")
			return dto.ActivityResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		return dto.ActivityResponse{}, err
	}

	if payload.EndDate != nil && payload.EndDate.Before(payload.StartDate) {
		return dto.ActivityResponse{}, fmt.Errorf("%w: end date precedes start date", ErrInvalidArgument)
	}

	duration := models.DeriveDuration(payload.StartDate, payload.EndDate)
	activity := models.Activity{
		StudentID:       student.ID,
		Title:           strings.TrimSpace(payload.Title),
		Description:     s.sanitizer.Sanitize(payload.Description),
		Type:            activityType,
		Category:        category,
		Level:           level,
		AchievementType: achievement,
		StartDate:       payload.StartDate,
		EndDate:         payload.EndDate,
		Duration:        duration,
		Score:           CalculateScore(activityType, level, achievement, duration),
		Status:          models.ActivityStatusPending,
	}

	documents, err := marshalDocuments(payload.Documents)
	if err != nil {
		return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	activity.Documents = documents

	if err := s.activities.Create(ctx, &activity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "activity_create_failed")
		return dto.ActivityResponse{}, err
	}

	s.notifySubmitted(ctx, activity)

	activity.Student = student
	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Update(ctx context.Context, activityID, studentID uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "activities.update", trace.WithAttributes(
		attribute.Int64("activity.id", int64(activityID)),
	))
	defer span.End()

	activity, err := s.loadOwned(ctx, activityID, studentID)
	if err != nil {
		span.RecordError(err)
		return dto.ActivityResponse{}, err
	}

	if payload.Title != nil {
		activity.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		activity.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.Type != nil {
		parsed, err := models.ParseActivityType(*payload.Type)
		if err != nil {
			return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		activity.Type = parsed
	}
	if payload.Category != nil {
		parsed, err := models.ParseActivityCategory(*payload.Category)
		if err != nil {
			return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		activity.Category = parsed
	}
	if payload.Level != nil {
		parsed, err := models.ParseActivityLevel(*payload.Level)
		if err != nil {
			return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		activity.Level = parsed
	}
	if payload.AchievementType != nil {
		parsed, err := models.ParseAchievementType(*payload.AchievementType)
		if err != nil {
			return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		activity.AchievementType = parsed
	}
	if payload.StartDate != nil {
		activity.StartDate = *payload.StartDate
	}
	if payload.EndDate != nil {
		activity.EndDate = payload.EndDate
	}
	if activity.EndDate != nil && activity.EndDate.Before(activity.StartDate) {
		return dto.ActivityResponse{}, fmt.Errorf("%w: end date precedes start date", ErrInvalidArgument)
	}
	if payload.Documents != nil {
		documents, err := marshalDocuments(payload.Documents)
		if err != nil {
			return dto.ActivityResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		activity.Documents = documents
	}

	// Scoreable fields may have changed; never persist a stale score.
	activity.Duration = models.DeriveDuration(activity.StartDate, activity.EndDate)
	activity.Score = CalculateScore(activity.Type, activity.Level, activity.AchievementType, activity.Duration)

	if err := s.activities.Update(ctx, &activity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "activity_update_failed")
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Delete(ctx context.Context, activityID, studentID uint) error {
	ctx, span := s.tracer.Start(ctx, "activities.delete", trace.WithAttributes(
		attribute.Int64("activity.id", int64(activityID)),
	))
	defer span.End()

	if _, err := s.loadOwned(ctx, activityID, studentID); err != nil {
		span.RecordError(err)
		return err
	}

	return s.activities.Delete(ctx, activityID)
}

func (s *activityService) Get(ctx context.Context, activityID uint) (dto.ActivityResponse, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) ListByStudent(ctx context.Context, studentID uint, filter dto.ActivityFilter) ([]dto.ActivityResponse, int64, error) {
	repoFilter := repository.ActivityListFilter{Limit: filter.Limit, Offset: filter.Offset}

	if filter.Status != nil && *filter.Status != "" {
		status, err := models.ParseActivityStatus(*filter.Status)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		repoFilter.Status = &status
	}
	if filter.Type != nil && *filter.Type != "" {
		activityType, err := models.ParseActivityType(*filter.Type)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		repoFilter.Type = &activityType
	}
	if filter.Category != nil && *filter.Category != "" {
		category, err := models.ParseActivityCategory(*filter.Category)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		repoFilter.Category = &category
	}

	activities, total, err := s.activities.ListByStudent(ctx, studentID, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	return dto.NewActivityResponseSlice(activities), total, nil
}

func (s *activityService) ListReviewQueue(ctx context.Context, reviewerID uint, limit, offset int) ([]dto.ActivityResponse, error) {
	reviewer, err := s.users.GetByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewerNotFound
		}
		return nil, err
	}

	var department string
	switch reviewer.Role {
	case models.UserRoleAdmin:
		department = ""
	case models.UserRoleFaculty:
		department = reviewer.Department
	default:
		return nil, ErrPermissionDenied
	}

	activities, err := s.activities.ListPendingByDepartment(ctx, department, limit, offset)
	if err != nil {
		return nil, err
	}

	return dto.NewActivityResponseSlice(activities), nil
}

// loadOwned fetches an activity and enforces the ownership and lifecycle
// guards for student-initiated mutations.
func (s *activityService) loadOwned(ctx context.Context, activityID, studentID uint) (models.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Activity{}, ErrActivityNotFound
		}
		return models.Activity{}, err
	}

	if activity.StudentID != studentID {
		return models.Activity{}, ErrPermissionDenied
	}
	if !activity.EditableByStudent() {
		return models.Activity{}, ErrInvalidState
	}

	return activity, nil
}

func (s *activityService) notifySubmitted(ctx context.Context, activity models.Activity) {
	if s.notifier == nil {
		return
	}

	activityID := activity.ID
	_, err := s.notifier.Notify(ctx, dto.NotificationCreateRequest{
		UserID:     activity.StudentID,
		Type:       string(models.NotificationActivitySubmitted),
		Title:      "Activity submitted",
		Message:    fmt.Sprintf("Your activity %q was submitted and is awaiting review.", activity.Title),
		ActivityID: &activityID,
		Priority:   string(models.NotificationPriorityLow),
	})
	if err != nil {
		s.logger.Warn().Err(err).Uint("activity_id", activity.ID).Msg("failed to dispatch submission notification")
	}
}

func marshalDocuments(documents []dto.DocumentMetaPayload) (datatypes.JSON, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	metas := make([]models.DocumentMeta, 0, len(documents))
	for _, document := range documents {
		metas = append(metas, models.DocumentMeta{
			Name:     strings.TrimSpace(document.Name),
			URL:      strings.TrimSpace(document.URL),
			MimeType: strings.TrimSpace(document.MimeType),
		})
	}

	payload, err := json.Marshal(metas)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(payload), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/observability"
	"github.com/edutrack/activity-api/internal/repository"
)

// Notifier dispatches a notification. Implemented by NotificationService;
// kept narrow so workflow services do not depend on delivery concerns.
type Notifier interface {
	Notify(ctx context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error)
}

// ReviewService drives the faculty review workflow: claiming an activity for
// review and recording the approve/reject decision with its side effects.
type ReviewService interface {
	Begin(ctx context.Context, activityID, reviewerID uint) (dto.ActivityResponse, error)
	Review(ctx context.Context, activityID, reviewerID uint, payload dto.ReviewRequest) (dto.ReviewResponse, error)
}

type reviewService struct {
	uow       repository.UnitOfWork
	users     repository.UserRepository
	notifier  Notifier
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewReviewService constructs the review workflow service.
func NewReviewService(uow repository.UnitOfWork, users repository.UserRepository, notifier Notifier, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		uow:       uow,
		users:     users,
		notifier:  notifier,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "review_service").Logger(),
		tracer:    otel.Tracer("github.com/edutrack/activity-api/internal/service/review"),
		now:       time.Now,
	}
}

// Begin moves a pending activity into under-review, claiming it for the reviewer.
func (s *reviewService) Begin(ctx context.Context, activityID, reviewerID uint) (dto.ActivityResponse, error) {
	ctx, span := s.tracer.Start(ctx, "review.begin", trace.WithAttributes(
		attribute.Int64("review.activity_id", int64(activityID)),
		attribute.Int64("review.reviewer_id", int64(reviewerID)),
	))
	defer span.End()

	reviewer, err := s.loadReviewer(ctx, reviewerID)
	if err != nil {
		span.RecordError(err)
		return dto.ActivityResponse{}, err
	}

	var updated models.Activity
	err = s.uow.Do(ctx, func(repos repository.TxRepositories) error {
		activity, err := repos.Activities.GetByID(ctx, activityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActivityNotFound
			}
			return err
		}

		if !reviewer.CanReview(activity.Student.Department) {
			return ErrPermissionDenied
		}
		if activity.Status != models.ActivityStatusPending {
			return ErrInvalidState
		}

		activity.Status = models.ActivityStatusUnderReview
		reviewedBy := reviewer.ID
		activity.ReviewedBy = &reviewedBy
		if err := repos.Activities.Update(ctx, &activity); err != nil {
			return err
		}

		updated = activity
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "review_begin_failed")
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(updated), nil
}

// Review applies a terminal review decision. All persistence effects run in
// one transaction; notifications are dispatched best-effort after commit.
func (s *reviewService) Review(ctx context.Context, activityID, reviewerID uint, payload dto.ReviewRequest) (dto.ReviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewResponse{}, err
	}

	targetStatus, err := models.ParseActivityStatus(payload.Status)
	if err != nil || !targetStatus.IsTerminal() {
		return dto.ReviewResponse{}, fmt.Errorf("%w: target status must be approved or rejected", ErrInvalidArgument)
	}

	ctx, span := s.tracer.Start(ctx, "review.decide", trace.WithAttributes(
		attribute.Int64("review.activity_id", int64(activityID)),
		attribute.Int64("review.reviewer_id", int64(reviewerID)),
		attribute.String("review.target_status", string(targetStatus)),
	))
	defer span.End()

	reviewer, err := s.loadReviewer(ctx, reviewerID)
	if err != nil {
		span.RecordError(err)
		return dto.ReviewResponse{}, err
	}

	var (
		reviewed     models.Activity
		awardedBadge *models.Badge
	)

	err = s.uow.Do(ctx, func(repos repository.TxRepositories) error {
		activity, err := repos.Activities.GetByID(ctx, activityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActivityNotFound
			}
			return err
		}

		if !reviewer.CanReview(activity.Student.Department) {
			return ErrPermissionDenied
		}

		// Terminal states reject re-review outright: this guard is what keeps
		// repeated calls from double-crediting the student.
		if activity.Status.IsTerminal() {
			return ErrInvalidState
		}

		reviewedAt := s.now()
		reviewedBy := reviewer.ID
		activity.Status = targetStatus
		activity.Remarks = s.sanitizer.Sanitize(payload.Remarks)
		activity.ReviewedBy = &reviewedBy
		activity.ReviewedAt = &reviewedAt
		activity.IsVerified = targetStatus == models.ActivityStatusApproved
		if targetStatus == models.ActivityStatusApproved && payload.Credits != nil {
			activity.Credits = *payload.Credits
		}

		if err := repos.Activities.Update(ctx, &activity); err != nil {
			return err
		}

		if targetStatus == models.ActivityStatusApproved {
			badge, err := s.applyApproval(ctx, repos, activity, reviewedAt)
			if err != nil {
				return err
			}
			awardedBadge = badge
		}

		reviewed = activity
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "review_failed")
		return dto.ReviewResponse{}, err
	}

	observability.ReviewsTotal().WithLabelValues(string(targetStatus)).Inc()
	if awardedBadge != nil {
		observability.BadgesAwardedTotal().WithLabelValues(string(awardedBadge.Tier)).Inc()
	}

	s.notifyOutcome(ctx, reviewed, reviewer.ID, awardedBadge)

	response := dto.ReviewResponse{Activity: dto.NewActivityResponse(reviewed)}
	if awardedBadge != nil {
		badge := dto.NewBadgeResponse(*awardedBadge)
		response.AwardedBadge = &badge
	}

	span.SetAttributes(attribute.Bool("review.badge_awarded", awardedBadge != nil))
	return response, nil
}

// applyApproval increments the student aggregates SQL-side and evaluates badge
// progression against a fresh snapshot read inside the same transaction.
func (s *reviewService) applyApproval(ctx context.Context, repos repository.TxRepositories, activity models.Activity, awardedAt time.Time) (*models.Badge, error) {
	if err := repos.Students.IncrementAggregates(ctx, activity.StudentID, activity.Score, activity.Credits); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	student, err := repos.Students.GetByID(ctx, activity.StudentID)
	if err != nil {
		return nil, err
	}

	held, err := repos.Badges.ListTiers(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	tier, earned := EvaluateBadge(student.ActivityScore, held)
	if !earned {
		return nil, nil
	}

	// Recheck right before the insert: two concurrent approvals for the same
	// student may both evaluate the same tier.
	exists, err := repos.Badges.HasTier(ctx, student.ID, tier)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	badge := models.Badge{
		StudentID: student.ID,
		Tier:      tier,
		AwardedAt: awardedAt,
	}
	if err := repos.Badges.Create(ctx, &badge); err != nil {
		return nil, err
	}

	return &badge, nil
}

func (s *reviewService) loadReviewer(ctx context.Context, reviewerID uint) (models.User, error) {
	reviewer, err := s.users.GetByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrReviewerNotFound
		}
		return models.User{}, err
	}
	if reviewer.Role != models.UserRoleFaculty && reviewer.Role != models.UserRoleAdmin {
		return models.User{}, ErrPermissionDenied
	}
	return reviewer, nil
}

// notifyOutcome emits the outcome notification, plus a badge notification when
// a new tier was earned. Delivery failures never fail the review.
func (s *reviewService) notifyOutcome(ctx context.Context, activity models.Activity, reviewerID uint, badge *models.Badge) {
	if s.notifier == nil {
		return
	}

	activityID := activity.ID
	senderID := reviewerID

	outcome := dto.NotificationCreateRequest{
		UserID:     activity.StudentID,
		SenderID:   &senderID,
		ActivityID: &activityID,
		Priority:   string(models.NotificationPriorityNormal),
	}
	if activity.Status == models.ActivityStatusApproved {
		outcome.Type = string(models.NotificationActivityApproved)
		outcome.Title = "Activity approved"
		outcome.Message = fmt.Sprintf("Your activity %q was approved for %d points and %d credits.", activity.Title, activity.Score, activity.Credits)
	} else {
		outcome.Type = string(models.NotificationActivityRejected)
		outcome.Title = "Activity rejected"
		outcome.Message = fmt.Sprintf("Your activity %q was rejected.", activity.Title)
	}

	if _, err := s.notifier.Notify(ctx, outcome); err != nil {
		s.logger.Warn().Err(err).Uint("activity_id", activity.ID).Msg("failed to dispatch review notification")
	}

	if badge == nil {
		return
	}

	badgeNotification := dto.NotificationCreateRequest{
		UserID:     activity.StudentID,
		SenderID:   &senderID,
		Type:       string(models.NotificationBadgeEarned),
		Title:      "Badge earned",
		Message:    fmt.Sprintf("Congratulations! You earned the %s badge.", badge.Tier),
		ActivityID: &activityID,
		Priority:   string(models.NotificationPriorityHigh),
	}
	if _, err := s.notifier.Notify(ctx, badgeNotification); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", activity.StudentID).Msg("failed to dispatch badge notification")
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/repository"
)

// StatisticsService derives read-only per-student and per-department
// summaries from the activity collection. Never mutates any entity.
type StatisticsService interface {
	Summary(ctx context.Context, filter dto.StatisticsFilter) (dto.StatisticsSummaryResponse, error)
	MonthlyTrend(ctx context.Context, filter dto.StatisticsFilter) (dto.MonthlyTrendResponse, error)
}

type statisticsService struct {
	repo     repository.StatisticsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStatisticsService constructs the statistics service.
func NewStatisticsService(repo repository.StatisticsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StatisticsService {
	return &statisticsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "statistics_service").Logger(),
		now:      time.Now,
	}
}

func (s *statisticsService) Summary(ctx context.Context, filter dto.StatisticsFilter) (dto.StatisticsSummaryResponse, error) {
	cacheKey := statisticsCacheKey("summary", filter)
	tracer := otel.Tracer("github.com/edutrack/activity-api/internal/service/statistics")
	ctx, span := tracer.Start(ctx, "statistics.summary")
	span.SetAttributes(attribute.String("statistics.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.StatisticsSummaryResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("statistics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read statistics cache")
			span.RecordError(err)
		}
	}

	activities, err := s.repo.ListScoped(ctx, scopeFromFilter(filter))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_activities_failed")
		return dto.StatisticsSummaryResponse{}, err
	}

	summary := s.buildSummary(activities)
	span.SetAttributes(attribute.Int("statistics.activity_count", len(activities)))

	s.storeCache(ctx, cacheKey, summary)
	return summary, nil
}

func (s *statisticsService) MonthlyTrend(ctx context.Context, filter dto.StatisticsFilter) (dto.MonthlyTrendResponse, error) {
	cacheKey := statisticsCacheKey("trend", filter)
	tracer := otel.Tracer("github.com/edutrack/activity-api/internal/service/statistics")
	ctx, span := tracer.Start(ctx, "statistics.monthly_trend")
	span.SetAttributes(attribute.String("statistics.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.MonthlyTrendResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("statistics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read statistics cache")
			span.RecordError(err)
		}
	}

	activities, err := s.repo.ListScoped(ctx, scopeFromFilter(filter))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_activities_failed")
		return dto.MonthlyTrendResponse{}, err
	}

	trend := s.buildTrend(activities)
	s.storeCache(ctx, cacheKey, trend)
	return trend, nil
}

func (s *statisticsService) buildSummary(activities []models.Activity) dto.StatisticsSummaryResponse {
	summary := dto.StatisticsSummaryResponse{
		TotalActivities: int64(len(activities)),
		ByStatus:        map[string]int64{},
		ByType:          map[string]int64{},
		ByCategory:      map[string]int64{},
		GeneratedAt:     s.now().UTC(),
	}

	for _, activity := range activities {
		summary.ByStatus[string(activity.Status)]++
		summary.ByType[string(activity.Type)]++
		summary.ByCategory[string(activity.Category)]++

		if activity.Status == models.ActivityStatusApproved {
			summary.ApprovedScore += int64(activity.Score)
			summary.ApprovedCredits += int64(activity.Credits)
		}
	}

	return summary
}

func (s *statisticsService) buildTrend(activities []models.Activity) dto.MonthlyTrendResponse {
	type yearMonth struct {
		year  int
		month int
	}

	buckets := map[yearMonth]*dto.MonthlyTrendPoint{}
	for _, activity := range activities {
		key := yearMonth{year: activity.CreatedAt.Year(), month: int(activity.CreatedAt.Month())}
		point, ok := buckets[key]
		if !ok {
			point = &dto.MonthlyTrendPoint{Year: key.year, Month: key.month}
			buckets[key] = point
		}
		point.Count++
		if activity.Status == models.ActivityStatusApproved {
			point.Approved++
			point.ScoreTotal += int64(activity.Score)
		}
	}

	points := make([]dto.MonthlyTrendPoint, 0, len(buckets))
	for _, point := range buckets {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})

	return dto.MonthlyTrendResponse{Points: points, GeneratedAt: s.now().UTC()}
}

func (s *statisticsService) storeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store statistics cache")
	}
}

func scopeFromFilter(filter dto.StatisticsFilter) repository.StatisticsScope {
	return repository.StatisticsScope{
		StudentID:  filter.StudentID,
		Department: filter.Department,
		From:       filter.From,
		To:         filter.To,
	}
}

func statisticsCacheKey(kind string, filter dto.StatisticsFilter) string {
	student := "all"
	if filter.StudentID != nil {
		student = fmt.Sprintf("%d", *filter.StudentID)
	}
	department := "all"
	if filter.Department != nil && *filter.Department != "" {
		department = *filter.Department
	}
	window := ""
	if filter.From != nil {
		window += filter.From.UTC().Format("20060102")
	}
	window += "-"
	if filter.To != nil {
		window += filter.To.UTC().Format("20060102")
	}

	return fmt.Sprintf("statistics:%s:%s:%s:%s", kind, student, department, window)
}

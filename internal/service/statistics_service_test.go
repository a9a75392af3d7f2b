package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/repository"
	"github.com/edutrack/activity-api/internal/service"
)

func setupStatisticsService(t *testing.T, withCache bool) (service.StatisticsService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)

	var redisClient *redis.Client
	if withCache {
		server, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(server.Close)

		redisClient = redis.NewClient(&redis.Options{Addr: server.Addr()})
		t.Cleanup(func() { _ = redisClient.Close() })
	}

	svc := service.NewStatisticsService(
		repository.NewStatisticsRepository(db),
		redisClient,
		time.Minute,
		zerolog.New(io.Discard),
	)

	return svc, db
}

func seedStatisticsActivity(t *testing.T, db *gorm.DB, student models.Student, status models.ActivityStatus, kind models.ActivityType, score, credits int, createdAt time.Time) models.Activity {
	t.Helper()

	activity := models.Activity{
		StudentID: student.ID,
		Title:     "Seeded",
		Type:      kind,
		Category:  models.ActivityCategoryCoCurricular,
		Level:     models.ActivityLevelCollege,
		StartDate: createdAt,
		Score:     score,
		Credits:   credits,
		Status:    status,
	}
	require.NoError(t, db.Create(&activity).Error)
	require.NoError(t, db.Model(&models.Activity{}).Where("id = ?", activity.ID).
		UpdateColumn("created_at", createdAt).Error)

	return activity
}

func TestStatisticsService_Summary(t *testing.T) {
	svc, db := setupStatisticsService(t, false)
	student := createTestStudent(t, db, "Computer Science")

	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeWorkshop, 40, 3, now)
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeInternship, 25, 2, now)
	seedStatisticsActivity(t, db, student, models.ActivityStatusPending, models.ActivityTypeWorkshop, 10, 0, now)
	seedStatisticsActivity(t, db, student, models.ActivityStatusRejected, models.ActivityTypeSeminar, 5, 0, now)

	summary, err := svc.Summary(context.Background(), dto.StatisticsFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.Equal(t, int64(4), summary.TotalActivities)
	require.Equal(t, int64(2), summary.ByStatus["approved"])
	require.Equal(t, int64(1), summary.ByStatus["pending"])
	require.Equal(t, int64(2), summary.ByType["workshop"])
	require.Equal(t, int64(4), summary.ByCategory["co-curricular"])
	require.Equal(t, int64(65), summary.ApprovedScore, "only approved activities count toward totals")
	require.Equal(t, int64(5), summary.ApprovedCredits)
	require.False(t, summary.CacheHit)
}

func TestStatisticsService_SummaryServedFromCache(t *testing.T) {
	svc, db := setupStatisticsService(t, true)
	student := createTestStudent(t, db, "Computer Science")

	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeWorkshop, 40, 3, now)

	first, err := svc.Summary(context.Background(), dto.StatisticsFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	// New rows must not show up until the cache entry expires.
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeSeminar, 5, 1, now)

	second, err := svc.Summary(context.Background(), dto.StatisticsFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.TotalActivities, second.TotalActivities)
}

func TestStatisticsService_MonthlyTrendOrdering(t *testing.T) {
	svc, db := setupStatisticsService(t, false)
	student := createTestStudent(t, db, "Computer Science")

	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	january := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	december := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)

	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeWorkshop, 20, 1, march)
	seedStatisticsActivity(t, db, student, models.ActivityStatusPending, models.ActivityTypeWorkshop, 10, 0, january)
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeSeminar, 5, 0, january)
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeProject, 30, 2, december)

	trend, err := svc.MonthlyTrend(context.Background(), dto.StatisticsFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.Len(t, trend.Points, 3)

	require.Equal(t, 2025, trend.Points[0].Year)
	require.Equal(t, 12, trend.Points[0].Month)
	require.Equal(t, int64(1), trend.Points[0].Count)

	require.Equal(t, 2026, trend.Points[1].Year)
	require.Equal(t, 1, trend.Points[1].Month)
	require.Equal(t, int64(2), trend.Points[1].Count)
	require.Equal(t, int64(1), trend.Points[1].Approved)
	require.Equal(t, int64(5), trend.Points[1].ScoreTotal)

	require.Equal(t, 3, trend.Points[2].Month)
}

func TestStatisticsService_SummaryScopedByDateRange(t *testing.T) {
	svc, db := setupStatisticsService(t, false)
	student := createTestStudent(t, db, "Computer Science")

	inside := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeWorkshop, 40, 3, inside)
	seedStatisticsActivity(t, db, student, models.ActivityStatusApproved, models.ActivityTypeWorkshop, 40, 3, outside)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	summary, err := svc.Summary(context.Background(), dto.StatisticsFilter{
		StudentID: &student.ID,
		From:      &from,
		To:        &to,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), summary.TotalActivities)
}

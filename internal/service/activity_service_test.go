package service_test

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/repository"
	"github.com/edutrack/activity-api/internal/service"
)

var entitySeq atomic.Int64

func uniqueSuffix() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), entitySeq.Add(1))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Student{}, &models.Badge{}, &models.Activity{}, &models.Notification{}))

	return db
}

func createTestStudent(t *testing.T, db *gorm.DB, department string) models.Student {
	t.Helper()

	suffix := uniqueSuffix()
	student := models.Student{
		Name:       "Asha Verma",
		Email:      fmt.Sprintf("asha+%s@example.com", suffix),
		RollNumber: fmt.Sprintf("R%s", suffix),
		Department: department,
	}
	require.NoError(t, db.Create(&student).Error)

	return student
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole, department string) models.User {
	t.Helper()

	user := models.User{
		Name:       "Ravi Menon",
		Email:      fmt.Sprintf("ravi+%s@example.com", uniqueSuffix()),
		Role:       role,
		Department: department,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func setupActivityService(t *testing.T) (service.ActivityService, *gorm.DB, models.Student) {
	t.Helper()

	db := openTestDB(t)
	student := createTestStudent(t, db, "Computer Science")

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := service.NewActivityService(
		repository.NewActivityRepository(db),
		repository.NewStudentRepository(db),
		repository.NewUserRepository(db),
		nil,
		validate,
		zerolog.New(io.Discard),
	)

	return svc, db, student
}

func submitPayload() dto.ActivityCreateRequest {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	return dto.ActivityCreateRequest{
		Title:           "National Hackathon",
		Description:     "Built a campus navigation app.",
		Type:            "competition",
		Category:        "co-curricular",
		Level:           "national",
		AchievementType: "winner",
		StartDate:       start,
		EndDate:         &end,
	}
}

func TestActivityService_Submit(t *testing.T) {
	svc, db, student := setupActivityService(t)

	resp, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Status)
	require.Equal(t, 44, resp.Score, "competition at national level won: 12*2.0+20")
	require.Equal(t, 7, resp.Duration)
	require.Equal(t, student.ID, resp.StudentID)

	var stored models.Activity
	require.NoError(t, db.First(&stored, resp.ID).Error)
	require.Equal(t, models.ActivityStatusPending, stored.Status)
	require.Equal(t, 44, stored.Score)
}

func TestActivityService_SubmitUnknownType(t *testing.T) {
	svc, _, student := setupActivityService(t)

	payload := submitPayload()
	payload.Type = "interpretive-dance"

	_, err := svc.Submit(context.Background(), student.ID, payload)
	require.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestActivityService_SubmitUnknownStudent(t *testing.T) {
	svc, _, _ := setupActivityService(t)

	_, err := svc.Submit(context.Background(), 999999999, submitPayload())
	require.ErrorIs(t, err, service.ErrStudentNotFound)
}

func TestActivityService_SubmitRejectsReversedDateRange(t *testing.T) {
	svc, _, student := setupActivityService(t)

	payload := submitPayload()
	end := payload.StartDate.AddDate(0, 0, -1)
	payload.EndDate = &end

	_, err := svc.Submit(context.Background(), student.ID, payload)
	require.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestActivityService_SubmitPersistsDocuments(t *testing.T) {
	svc, _, student := setupActivityService(t)

	payload := submitPayload()
	payload.Documents = []dto.DocumentMetaPayload{
		{Name: "certificate.pdf", URL: "https://cdn.example.com/certificate.pdf", MimeType: "application/pdf"},
	}

	resp, err := svc.Submit(context.Background(), student.ID, payload)
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Documents, 1)
	require.Equal(t, "certificate.pdf", fetched.Documents[0].Name)
}

func TestActivityService_SubmitSanitizesDescription(t *testing.T) {
	svc, _, student := setupActivityService(t)

	payload := submitPayload()
	payload.Description = `<script>alert("x")</script>presented a paper`

	resp, err := svc.Submit(context.Background(), student.ID, payload)
	require.NoError(t, err)
	require.Equal(t, "presented a paper", resp.Description)
}

func TestActivityService_UpdateRecomputesScore(t *testing.T) {
	svc, _, student := setupActivityService(t)

	created, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)

	level := "department"
	achievement := "participation"
	updated, err := svc.Update(context.Background(), created.ID, student.ID, dto.ActivityUpdateRequest{
		Level:           &level,
		AchievementType: &achievement,
	})
	require.NoError(t, err)
	require.Equal(t, 15, updated.Score, "competition at department level with participation: 12*1.0+3")
}

func TestActivityService_UpdateRejectsReversedDateRange(t *testing.T) {
	svc, _, student := setupActivityService(t)

	created, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)

	// Moving the start past the stored end date must fail the same way as
	// submitting a reversed range.
	start := created.EndDate.AddDate(0, 0, 3)
	_, err = svc.Update(context.Background(), created.ID, student.ID, dto.ActivityUpdateRequest{
		StartDate: &start,
	})
	require.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestActivityService_UpdateRejectedForNonPending(t *testing.T) {
	svc, db, student := setupActivityService(t)

	created, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Activity{}).Where("id = ?", created.ID).
		Update("status", models.ActivityStatusApproved).Error)

	title := "Edited after approval"
	_, err = svc.Update(context.Background(), created.ID, student.ID, dto.ActivityUpdateRequest{Title: &title})
	require.ErrorIs(t, err, service.ErrInvalidState)
}

func TestActivityService_UpdateRejectedForOtherStudent(t *testing.T) {
	svc, db, student := setupActivityService(t)
	other := createTestStudent(t, db, "Mechanical")

	created, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(context.Background(), created.ID, other.ID, dto.ActivityUpdateRequest{Title: &title})
	require.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestActivityService_Delete(t *testing.T) {
	svc, db, student := setupActivityService(t)

	created, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID, student.ID))

	var count int64
	require.NoError(t, db.Model(&models.Activity{}).Where("id = ?", created.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestActivityService_DeleteRejectedForNonPending(t *testing.T) {
	svc, db, student := setupActivityService(t)

	created, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Activity{}).Where("id = ?", created.ID).
		Update("status", models.ActivityStatusUnderReview).Error)

	err = svc.Delete(context.Background(), created.ID, student.ID)
	require.ErrorIs(t, err, service.ErrInvalidState)
}

func TestActivityService_ListByStudentFiltersStatus(t *testing.T) {
	svc, db, student := setupActivityService(t)

	first, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Activity{}).Where("id = ?", second.ID).
		Update("status", models.ActivityStatusApproved).Error)

	status := "pending"
	activities, total, err := svc.ListByStudent(context.Background(), student.ID, dto.ActivityFilter{Status: &status})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, activities, 1)
	require.Equal(t, first.ID, activities[0].ID)
}

func TestActivityService_ReviewQueueScopedToDepartment(t *testing.T) {
	svc, db, student := setupActivityService(t)
	elsewhere := createTestStudent(t, db, "Civil-"+uniqueSuffix())

	mine, err := svc.Submit(context.Background(), student.ID, submitPayload())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), elsewhere.ID, submitPayload())
	require.NoError(t, err)

	faculty := createTestUser(t, db, models.UserRoleFaculty, student.Department)
	queue, err := svc.ListReviewQueue(context.Background(), faculty.ID, 100, 0)
	require.NoError(t, err)

	ids := make(map[uint]struct{}, len(queue))
	for _, item := range queue {
		require.Equal(t, student.Department, item.Student.Department)
		ids[item.ID] = struct{}{}
	}
	require.Contains(t, ids, mine.ID)
}

func TestActivityService_ReviewQueueDeniedForStudents(t *testing.T) {
	svc, db, _ := setupActivityService(t)

	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")
	_, err := svc.ListReviewQueue(context.Background(), user.ID, 10, 0)
	require.ErrorIs(t, err, service.ErrPermissionDenied)
}

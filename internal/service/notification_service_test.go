package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/dto"
	"github.com/edutrack/activity-api/internal/models"
	"github.com/edutrack/activity-api/internal/repository"
	"github.com/edutrack/activity-api/internal/service"
)

func setupNotificationService(t *testing.T) (service.NotificationService, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	db := openTestDB(t)

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		redisClient,
		"edutrack-test",
		nil,
		time.Hour,
		validate,
		zerolog.New(io.Discard),
	)

	return svc, db, server
}

func TestNotificationService_NotifyPersistsFirst(t *testing.T) {
	svc, db, _ := setupNotificationService(t)
	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")

	resp, err := svc.Notify(context.Background(), dto.NotificationCreateRequest{
		UserID:  user.ID,
		Type:    string(models.NotificationActivitySubmitted),
		Title:   "Activity submitted",
		Message: "Your activity is awaiting review.",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Equal(t, string(models.NotificationPriorityNormal), resp.Priority, "priority defaults to normal")
	require.False(t, resp.Read)

	var stored models.Notification
	require.NoError(t, db.First(&stored, resp.ID).Error)
	require.Equal(t, user.ID, stored.UserID)
}

func TestNotificationService_NotifyDeliversToSubscriber(t *testing.T) {
	svc, db, _ := setupNotificationService(t)
	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")

	stream, cleanup := svc.Subscribe(user.ID)
	defer cleanup()

	_, err := svc.Notify(context.Background(), dto.NotificationCreateRequest{
		UserID:  user.ID,
		Type:    string(models.NotificationBadgeEarned),
		Message: "You earned the bronze badge.",
	})
	require.NoError(t, err)

	select {
	case delivered := <-stream:
		require.Equal(t, string(models.NotificationBadgeEarned), delivered.Type)
		require.Equal(t, user.ID, delivered.UserID)
	case <-time.After(time.Second):
		t.Fatal("expected notification on subscriber channel")
	}
}

func TestNotificationService_NotifyRejectsEmptySanitizedMessage(t *testing.T) {
	svc, db, _ := setupNotificationService(t)
	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")

	var before int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&before).Error)

	_, err := svc.Notify(context.Background(), dto.NotificationCreateRequest{
		UserID:  user.ID,
		Type:    string(models.NotificationGeneric),
		Message: `<script>alert("x")</script>`,
	})
	require.Error(t, err)

	var after int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&after).Error)
	require.Equal(t, before, after)
}

func TestNotificationService_NotifyValidatesType(t *testing.T) {
	svc, db, _ := setupNotificationService(t)
	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")

	_, err := svc.Notify(context.Background(), dto.NotificationCreateRequest{
		UserID:  user.ID,
		Type:    "carrier-pigeon",
		Message: "hello",
	})
	require.Error(t, err)
}

func TestNotificationService_ReadStateFlow(t *testing.T) {
	svc, db, _ := setupNotificationService(t)
	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")

	first, err := svc.Notify(context.Background(), dto.NotificationCreateRequest{
		UserID:  user.ID,
		Type:    string(models.NotificationGeneric),
		Message: "first",
	})
	require.NoError(t, err)
	_, err = svc.Notify(context.Background(), dto.NotificationCreateRequest{
		UserID:  user.ID,
		Type:    string(models.NotificationGeneric),
		Message: "second",
	})
	require.NoError(t, err)

	unread, err := svc.CountUnread(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), unread)

	marked, err := svc.MarkRead(context.Background(), first.ID, user.ID)
	require.NoError(t, err)
	require.True(t, marked.Read)

	unread, err = svc.CountUnread(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	listed, err := svc.List(context.Background(), user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestNotificationService_MarkReadMissingNotification(t *testing.T) {
	svc, db, _ := setupNotificationService(t)
	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")

	_, err := svc.MarkRead(context.Background(), 999999, user.ID)
	require.ErrorIs(t, err, service.ErrNotificationNotFound)
}

func TestNotificationService_ListScopedToUser(t *testing.T) {
	svc, db, _ := setupNotificationService(t)
	user := createTestUser(t, db, models.UserRoleStudent, "Computer Science")
	other := createTestUser(t, db, models.UserRoleStudent, "Computer Science")

	_, err := svc.Notify(context.Background(), dto.NotificationCreateRequest{
		UserID:  user.ID,
		Type:    string(models.NotificationGeneric),
		Message: "for user",
	})
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), other.ID, 10, 0)
	require.NoError(t, err)
	require.Empty(t, listed)

	// MarkRead is scoped the same way: another user's id never matches.
	_, err = svc.MarkRead(context.Background(), 1, 0)
	require.ErrorIs(t, err, service.ErrNotificationNotFound)
}

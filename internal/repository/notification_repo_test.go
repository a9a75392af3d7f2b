package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edutrack/activity-api/internal/models"
)

func seedNotification(t *testing.T, db *gorm.DB, userID uint, createdAt time.Time) models.Notification {
	t.Helper()

	notification := models.Notification{
		UserID:   userID,
		Type:     models.NotificationGeneric,
		Message:  "repo test",
		Priority: models.NotificationPriorityNormal,
	}
	require.NoError(t, db.Create(&notification).Error)
	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", notification.ID).
		UpdateColumn("created_at", createdAt).Error)

	return notification
}

func TestNotificationRepositoryMarkReadScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	now := time.Now().UTC()
	notification := seedNotification(t, db, 11, now)

	_, err := repo.MarkRead(context.Background(), notification.ID, 12)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	marked, err := repo.MarkRead(context.Background(), notification.ID, 11)
	require.NoError(t, err)
	require.True(t, marked.Read)

	// Marking twice is a no-op.
	marked, err = repo.MarkRead(context.Background(), notification.ID, 11)
	require.NoError(t, err)
	require.True(t, marked.Read)
}

func TestNotificationRepositoryDeleteOlderThan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	now := time.Now().UTC()
	expired := seedNotification(t, db, 21, now.Add(-31*24*time.Hour))
	fresh := seedNotification(t, db, 21, now.Add(-time.Hour))

	purged, err := repo.DeleteOlderThan(context.Background(), now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)

	var remaining []models.Notification
	require.NoError(t, db.Where("user_id = ?", 21).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, fresh.ID, remaining[0].ID)
	require.NotEqual(t, expired.ID, remaining[0].ID)
}

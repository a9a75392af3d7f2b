package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("EDUTRACK_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EDUTRACK_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "EduTrack Activity API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 5*time.Minute, cfg.StatisticsCacheTTL)
	require.Equal(t, 720*time.Hour, cfg.NotificationRetention)
	require.Equal(t, 30*time.Second, cfg.StreamKeepAlive)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("EDUTRACK_JWT_SECRET", "test-secret")
	t.Setenv("EDUTRACK_STATISTICS_CACHE_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

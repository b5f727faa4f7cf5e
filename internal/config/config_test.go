package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/storedesk/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := config.New()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080", c.GetAPIBaseURL())
	require.Equal(t, 10*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.StateBackendFile, c.GetStateBackend())
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, time.Hour, c.GetAccessTokenExpiry())
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("STOREDESK_API_URL", "https://api.example.com")
	t.Setenv("STOREDESK_TIMEOUT", "3s")
	t.Setenv("STOREDESK_STATE_BACKEND", "redis")
	t.Setenv("STOREDESK_STATE_DIR", "/tmp/storedesk-state")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	c, err := config.New()
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com", c.GetAPIBaseURL())
	require.Equal(t, 3*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.StateBackendRedis, c.GetStateBackend())
	require.Equal(t, "/tmp/storedesk-state", c.GetStateDir())
	require.Equal(t, ":9090", c.GetPort())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example.com"))
	require.False(t, c.GetAllowedOrigins().IsAllowedOrigin("https://c.example.com"))
}

func TestNew_InvalidDuration(t *testing.T) {
	t.Setenv("STOREDESK_TIMEOUT", "soon")

	_, err := config.New()
	require.Error(t, err)
}

package app_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/storedesk/internal/app"
	"github.com/jrsteele09/storedesk/internal/config"
	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/theme"
	"github.com/jrsteele09/storedesk/users"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, env map[string]string) config.Config {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.New()
	require.NoError(t, err)
	return cfg
}

func TestNew_FileBackendPersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := newConfig(t, map[string]string{
		"STOREDESK_STATE_BACKEND": config.StateBackendFile,
		"STOREDESK_STATE_DIR":     dir,
	})

	first, err := app.New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, first.Credential.Set(ctx, "T1"))
	require.NoError(t, first.Session.SetAuth(ctx, &users.Profile{ID: "u1", Role: users.RoleOwner}, "T1"))
	require.NoError(t, first.Theme.Set(ctx, theme.Dark))
	require.NoError(t, first.Close())

	second, err := app.New(ctx, cfg)
	require.NoError(t, err)
	require.True(t, second.Session.State().IsAuthenticated)
	require.Equal(t, theme.Dark, second.Theme.Current())
	token, err := second.Credential.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "T1", token)
}

func TestNew_RedisBackend(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := newConfig(t, map[string]string{
		"STOREDESK_STATE_BACKEND": config.StateBackendRedis,
		"REDIS_URL":               "redis://" + mr.Addr(),
		"STOREDESK_REDIS_PREFIX":  "pos1:",
	})

	a, err := app.New(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Credential.Set(ctx, "T1"))
	raw, err := mr.Get("pos1:" + kvstore.KeyCredential)
	require.NoError(t, err)
	require.JSONEq(t, `"T1"`, raw)
}

func TestNew_MemoryBackend(t *testing.T) {
	cfg := newConfig(t, map[string]string{"STOREDESK_STATE_BACKEND": config.StateBackendMemory})

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	require.False(t, a.Session.State().IsAuthenticated)
	require.Nil(t, a.Selection.Current())
	require.Equal(t, theme.System, a.Theme.Current())
	require.Equal(t, "http://localhost:8080", a.Client.BaseURL())
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := newConfig(t, map[string]string{"STOREDESK_STATE_BACKEND": "floppy"})

	_, err := app.New(context.Background(), cfg)
	require.Error(t, err)
}

func TestNew_InvalidAPIURL(t *testing.T) {
	cfg := newConfig(t, map[string]string{
		"STOREDESK_STATE_BACKEND": config.StateBackendMemory,
		"STOREDESK_API_URL":       "localhost",
	})

	_, err := app.New(context.Background(), cfg)
	require.Error(t, err)
}

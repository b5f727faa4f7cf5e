package theme_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/kvstore/repofake"
	"github.com/jrsteele09/storedesk/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToSystem(t *testing.T) {
	s, err := theme.New(context.Background(), repofake.NewFakeRepo())
	require.NoError(t, err)
	assert.Equal(t, theme.System, s.Current())
}

func TestNew_IgnoresUnknownPersistedMode(t *testing.T) {
	repo := repofake.NewFakeRepo()
	repo.Put(kvstore.KeyTheme, []byte(`{"mode":"sepia"}`))

	s, err := theme.New(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, theme.System, s.Current())
}

func TestSetAndRestore(t *testing.T) {
	ctx := context.Background()
	repo := repofake.NewFakeRepo()
	s, err := theme.New(ctx, repo)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, theme.Light))
	assert.JSONEq(t, `{"mode":"light"}`, string(repo.Raw(kvstore.KeyTheme)))

	restored, err := theme.New(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, restored.Current())

	assert.ErrorIs(t, s.Set(ctx, theme.Mode("neon")), theme.ErrUnknownMode)
	assert.Equal(t, theme.Light, s.Current())
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	s, err := theme.New(ctx, repofake.NewFakeRepo())
	require.NoError(t, err)

	for _, want := range []theme.Mode{theme.Dark, theme.Light, theme.Dark} {
		got, err := s.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseMode(t *testing.T) {
	m, err := theme.ParseMode("dark")
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, m)

	_, err = theme.ParseMode("Dark")
	assert.ErrorIs(t, err, theme.ErrUnknownMode)
}

package kvstore_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/kvstore/repofake"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSlot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repofake.NewFakeRepo()
	slot := kvstore.NewSlot[record](repo, "counter")

	_, found, err := slot.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, slot.Save(ctx, record{Name: "a", Count: 2}))
	require.JSONEq(t, `{"name":"a","count":2}`, string(repo.Raw("counter")))

	got, found, err := slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, record{Name: "a", Count: 2}, got)

	require.NoError(t, slot.Clear(ctx))
	_, found, err = slot.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestSlot_CorruptRecord(t *testing.T) {
	repo := repofake.NewFakeRepo()
	repo.Put("counter", []byte("{not json"))

	_, found, err := kvstore.NewSlot[record](repo, "counter").Load(context.Background())
	require.Error(t, err)
	require.False(t, found)
	require.Contains(t, err.Error(), "decode counter")
}

func TestFakeRepo_EmptyKey(t *testing.T) {
	repo := repofake.NewFakeRepo()
	require.ErrorIs(t, repo.Save(context.Background(), "", []byte("x")), kvstore.ErrEmptyKey)
}

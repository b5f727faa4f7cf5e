package session_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/kvstore/repofake"
	"github.com/jrsteele09/storedesk/session"
	"github.com/jrsteele09/storedesk/users"
	"github.com/stretchr/testify/require"
)

var testUser = &users.Profile{ID: "u1", Email: "sam@example.com", Role: users.RoleStaff, Name: "Sam Lee"}

func setupStore(t *testing.T) (*session.Store, *repofake.FakeRepo) {
	t.Helper()
	repo := repofake.NewFakeRepo()
	s, err := session.New(context.Background(), repo)
	require.NoError(t, err)
	return s, repo
}

func requireConsistent(t *testing.T, st session.State) {
	t.Helper()
	if st.IsAuthenticated {
		require.NotNil(t, st.User)
		require.NotEmpty(t, st.Token)
	} else {
		require.False(t, st.User != nil && st.Token != "", "both present but not authenticated")
	}
}

func TestStore_StartsEmpty(t *testing.T) {
	s, _ := setupStore(t)
	require.Equal(t, session.State{}, s.State())
}

func TestStore_SetAuth(t *testing.T) {
	ctx := context.Background()
	s, repo := setupStore(t)

	require.NoError(t, s.SetAuth(ctx, testUser, "T1"))

	st := s.State()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, "T1", st.Token)
	require.Equal(t, users.RoleStaff, st.Role())
	require.JSONEq(t,
		`{"user":{"id":"u1","email":"sam@example.com","role":"staff","name":"Sam Lee"},"token":"T1","isAuthenticated":true}`,
		string(repo.Raw(kvstore.KeySession)))
}

func TestStore_SetAuthRejectsPartialState(t *testing.T) {
	ctx := context.Background()
	s, repo := setupStore(t)

	require.ErrorIs(t, s.SetAuth(ctx, nil, "T1"), session.ErrIncompleteAuth)
	require.ErrorIs(t, s.SetAuth(ctx, testUser, ""), session.ErrIncompleteAuth)
	require.Equal(t, session.State{}, s.State())
	require.Empty(t, repo.Writes())
}

func TestStore_StateIsACopy(t *testing.T) {
	s, _ := setupStore(t)
	require.NoError(t, s.SetAuth(context.Background(), testUser, "T1"))

	st := s.State()
	st.User.Role = users.RoleOwner
	require.Equal(t, users.RoleStaff, s.State().Role())
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, repo := setupStore(t)
	require.NoError(t, s.SetAuth(ctx, testUser, "T1"))

	require.NoError(t, s.Logout(ctx))
	once := s.State()
	onceRaw := string(repo.Raw(kvstore.KeySession))

	require.NoError(t, s.Logout(ctx))
	require.Equal(t, once, s.State())
	require.Equal(t, onceRaw, string(repo.Raw(kvstore.KeySession)))
	require.Equal(t, session.State{}, once)
}

func TestStore_AtomicityOverRandomSequences(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	rng := rand.New(rand.NewSource(42))

	var seen []session.State
	s.Subscribe(func(st session.State) { seen = append(seen, st) })

	for i := 0; i < 200; i++ {
		if rng.Intn(2) == 0 {
			require.NoError(t, s.SetAuth(ctx, testUser, "T"))
		} else {
			require.NoError(t, s.Logout(ctx))
		}
		requireConsistent(t, s.State())
	}
	require.Len(t, seen, 200)
	for _, st := range seen {
		requireConsistent(t, st)
	}
}

func TestNew_RestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	repo := repofake.NewFakeRepo()

	first, err := session.New(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, first.SetAuth(ctx, testUser, "T1"))

	second, err := session.New(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, first.State(), second.State())
}

func TestNew_DiscardsPartialRecord(t *testing.T) {
	repo := repofake.NewFakeRepo()
	repo.Put(kvstore.KeySession, []byte(`{"user":null,"token":"T1","isAuthenticated":true}`))

	s, err := session.New(context.Background(), repo)
	require.NoError(t, err)
	require.Equal(t, session.State{}, s.State())
}

func TestStore_PersistFailureStillCommitsMemory(t *testing.T) {
	ctx := context.Background()
	s, repo := setupStore(t)
	repo.FailOn(kvstore.KeySession, errors.New("disk full"))

	err := s.SetAuth(ctx, testUser, "T1")
	require.Error(t, err)
	require.True(t, s.State().IsAuthenticated)
}

func TestCredential(t *testing.T) {
	ctx := context.Background()
	repo := repofake.NewFakeRepo()
	c := session.NewCredential(repo)

	tok, err := c.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, c.Set(ctx, "T1"))
	tok, err = c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "T1", tok)

	require.NoError(t, c.Clear(ctx))
	tok, err = c.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

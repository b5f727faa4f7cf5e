package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jrsteele09/storedesk/api"
	"github.com/jrsteele09/storedesk/auth"
	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/kvstore/repofake"
	"github.com/jrsteele09/storedesk/session"
	"github.com/jrsteele09/storedesk/users"
	"github.com/stretchr/testify/require"
)

const (
	testUserEmail    = "sam@example.com"
	testUserPassword = "Password123"
)

type fakeAuthenticator struct {
	resp  *api.LoginResponse
	err   error
	calls int
}

func (f *fakeAuthenticator) Login(_ context.Context, email, password string) (*api.LoginResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if email != testUserEmail || password != testUserPassword {
		return nil, &api.Error{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	}
	return f.resp, nil
}

type testFixture struct {
	ctx        context.Context
	repo       *repofake.FakeRepo
	api        *fakeAuthenticator
	credential *session.Credential
	session    *session.Store
	service    *auth.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	ctx := context.Background()
	repo := repofake.NewFakeRepo()

	sess, err := session.New(ctx, repo)
	require.NoError(t, err)
	credential := session.NewCredential(repo)
	authenticator := &fakeAuthenticator{resp: &api.LoginResponse{
		User:        users.Profile{ID: "u1", Email: testUserEmail, Role: users.RoleStaff, Name: "Sam Lee"},
		AccessToken: "T1",
	}}

	service, err := auth.NewService(auth.Deps{API: authenticator, Credential: credential, Session: sess})
	require.NoError(t, err)

	return &testFixture{ctx: ctx, repo: repo, api: authenticator, credential: credential, session: sess, service: service}
}

func TestNewService_RequiresDeps(t *testing.T) {
	_, err := auth.NewService(auth.Deps{})
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	f := setupTestFixture(t)

	user, err := f.service.Login(f.ctx, "SAM@example.com", testUserPassword)
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	token, err := f.credential.Token(f.ctx)
	require.NoError(t, err)
	require.Equal(t, "T1", token)

	state := f.session.State()
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "T1", state.Token)
	require.Equal(t, users.RoleStaff, state.Role())

	require.Equal(t, []string{kvstore.KeyCredential, kvstore.KeySession}, f.repo.Writes())
}

func TestLogin_InvalidInputSkipsAPI(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(f.ctx, "not-an-email", testUserPassword)
	require.ErrorIs(t, err, auth.ErrInvalidEmail)
	require.Zero(t, f.api.calls)
}

func TestLogin_RejectedLeavesSessionEmpty(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(f.ctx, testUserEmail, "wrong")
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, api.StatusOf(err))
	require.False(t, f.session.State().IsAuthenticated)
	require.Empty(t, f.repo.Writes())
}

func TestLogin_CredentialFailure(t *testing.T) {
	f := setupTestFixture(t)
	f.repo.FailOn(kvstore.KeyCredential, errors.New("read-only"))

	_, err := f.service.Login(f.ctx, testUserEmail, testUserPassword)
	require.Error(t, err)
	require.False(t, f.session.State().IsAuthenticated)
}

func TestLogout_Idempotent(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.service.Login(f.ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(f.ctx))
	first := f.session.State()
	require.NoError(t, f.service.Logout(f.ctx))

	require.Equal(t, first, f.session.State())
	require.False(t, first.IsAuthenticated)
	require.Nil(t, first.User)

	token, err := f.credential.Token(f.ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}

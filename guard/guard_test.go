package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/storedesk/guard"
	"github.com/jrsteele09/storedesk/session"
	"github.com/jrsteele09/storedesk/users"
	"github.com/stretchr/testify/assert"
)

func loggedIn(role users.RoleType) session.State {
	return session.State{
		User:            &users.Profile{ID: "u1", Email: "u1@example.com", Role: role},
		Token:           "T1",
		IsAuthenticated: true,
	}
}

var allRoles = []users.RoleType{users.RoleOwner, users.RoleManager, users.RoleStaff}

func TestEvaluate_UnauthenticatedAlwaysLogin(t *testing.T) {
	routes := []guard.Route{
		{Path: "/dashboard"},
		{Path: "/staff", AllowedRoles: []users.RoleType{users.RoleOwner}},
		{Path: "/tasks", AllowedRoles: allRoles},
	}
	states := []session.State{
		{},
		{Token: "T1"},
		{User: &users.Profile{ID: "u1", Role: users.RoleOwner}},
	}
	for _, route := range routes {
		for _, state := range states {
			d := guard.Evaluate(state, route)
			assert.Equal(t, guard.RedirectLogin, d.Outcome, route.Path)
			assert.Equal(t, guard.PathLogin, d.RedirectTo)
		}
	}
}

func TestEvaluate_RoleCheck(t *testing.T) {
	tests := []struct {
		name    string
		role    users.RoleType
		allowed []users.RoleType
		want    guard.Outcome
	}{
		{name: "no restriction", role: users.RoleStaff, want: guard.Render},
		{name: "empty allow-list", role: users.RoleStaff, allowed: []users.RoleType{}, want: guard.Render},
		{name: "role allowed", role: users.RoleManager, allowed: []users.RoleType{users.RoleOwner, users.RoleManager}, want: guard.Render},
		{name: "role not allowed", role: users.RoleStaff, allowed: []users.RoleType{users.RoleOwner, users.RoleManager}, want: guard.RedirectUnauthorized},
		{name: "owner not implicitly allowed", role: users.RoleOwner, allowed: []users.RoleType{users.RoleStaff}, want: guard.RedirectUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := guard.Evaluate(loggedIn(tc.role), guard.Route{Path: "/x", AllowedRoles: tc.allowed})
			assert.Equal(t, tc.want, d.Outcome)
			if tc.want == guard.RedirectUnauthorized {
				assert.Equal(t, guard.PathUnauthorized, d.RedirectTo)
			}
		})
	}
}

func TestErrorFor(t *testing.T) {
	assert.NoError(t, guard.ErrorFor(guard.Decision{Outcome: guard.Render}))
	assert.ErrorIs(t, guard.ErrorFor(guard.Decision{Outcome: guard.RedirectLogin}), guard.ErrLoginRequired)
	assert.ErrorIs(t, guard.ErrorFor(guard.Decision{Outcome: guard.RedirectUnauthorized}), guard.ErrUnauthorized)
}

func TestRequire(t *testing.T) {
	route := guard.Route{Path: "/staff", AllowedRoles: []users.RoleType{users.RoleOwner, users.RoleManager}}
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	tests := []struct {
		name     string
		state    session.State
		status   int
		location string
	}{
		{name: "logged out", state: session.State{}, status: http.StatusSeeOther, location: guard.PathLogin},
		{name: "staff", state: loggedIn(users.RoleStaff), status: http.StatusSeeOther, location: guard.PathUnauthorized},
		{name: "manager", state: loggedIn(users.RoleManager), status: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			current := func(*http.Request) session.State { return tc.state }
			h := guard.Require(current, route)(handler)

			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/staff", nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

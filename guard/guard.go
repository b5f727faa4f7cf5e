// Package guard decides whether a protected route may be shown for a session.
package guard

import (
	"errors"
	"net/http"
	"slices"

	"github.com/jrsteele09/storedesk/session"
	"github.com/jrsteele09/storedesk/users"
)

const (
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrUnauthorized  = errors.New("your role is not allowed to access this page")
)

type Outcome int

const (
	Render Outcome = iota
	RedirectLogin
	RedirectUnauthorized
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	}
	return "unknown"
}

// Route is a protected destination. An empty AllowedRoles admits every
// authenticated user.
type Route struct {
	Path         string
	AllowedRoles []users.RoleType
}

type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// Evaluate is a pure function of the session snapshot and the route.
func Evaluate(state session.State, route Route) Decision {
	if !state.IsAuthenticated || state.User == nil {
		return Decision{Outcome: RedirectLogin, RedirectTo: PathLogin}
	}
	if len(route.AllowedRoles) > 0 && !slices.Contains(route.AllowedRoles, state.User.Role) {
		return Decision{Outcome: RedirectUnauthorized, RedirectTo: PathUnauthorized}
	}
	return Decision{Outcome: Render}
}

// ErrorFor maps a redirect decision to an error for front-ends that cannot
// redirect. Render maps to nil.
func ErrorFor(d Decision) error {
	switch d.Outcome {
	case RedirectLogin:
		return ErrLoginRequired
	case RedirectUnauthorized:
		return ErrUnauthorized
	}
	return nil
}

// SessionFunc resolves the session in effect for a request.
type SessionFunc func(r *http.Request) session.State

// Require is middleware that renders the route only when Evaluate allows it
// and otherwise redirects with 303 See Other.
func Require(current SessionFunc, route Route) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			d := Evaluate(current(r), route)
			if d.Outcome != Render {
				http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}

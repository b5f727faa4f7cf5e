package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/storedesk/guard"
	apperrors "github.com/jrsteele09/storedesk/internal/errors"
	"github.com/jrsteele09/storedesk/session"
	"github.com/jrsteele09/storedesk/token"
	"github.com/jrsteele09/storedesk/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores parsed token claims
	ContextKeyClaims ContextKey = "claims"
	// ContextKeyUser stores the authenticated user
	ContextKeyUser ContextKey = "user"
)

func claimsFrom(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}

func userFrom(ctx context.Context) *users.User {
	user, _ := ctx.Value(ContextKeyUser).(*users.User)
	return user
}

// RequireAuth is middleware that validates a Bearer access token and loads its user
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeFailure(w, http.StatusUnauthorized, "unauthorized", "missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeFailure(w, http.StatusUnauthorized, "unauthorized", "invalid Authorization header format")
				return
			}

			claims, err := s.tokens.Parse(parts[1])
			if err != nil {
				msg := "invalid token"
				if apperrors.Is(err, apperrors.ErrTokenExpired) {
					msg = "token expired"
				}
				writeFailure(w, http.StatusUnauthorized, "unauthorized", msg)
				return
			}

			user, err := s.repos.Users.GetByID(claims.Subject)
			if err != nil || user.Blocked {
				writeFailure(w, http.StatusUnauthorized, "unauthorized", "user is not active")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			ctx = context.WithValue(ctx, ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireStore is middleware for store-scoped routes. It must run after
// RequireAuth and rejects tokens that were not issued for an active store the
// user belongs to.
func (s *Server) RequireStore() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r.Context())
			user := userFrom(r.Context())
			if claims == nil || user == nil {
				writeFailure(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.StoreID == "" {
				writeFailure(w, http.StatusBadRequest, "no store selected", "refresh the token for a store first")
				return
			}
			store, err := s.repos.Stores.Get(claims.StoreID)
			if err != nil || !store.Active || !user.HasStore(store.ID) {
				writeFailure(w, http.StatusForbidden, "forbidden", apperrors.ErrUnauthorizedStore.Error())
				return
			}
			next(w, r)
		}
	}
}

// RequireRole is middleware that admits only the given roles. It must run after RequireAuth.
func (s *Server) RequireRole(roles ...users.RoleType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			state := session.State{}
			if user := userFrom(r.Context()); user != nil {
				profile := user.Profile()
				state = session.State{User: &profile, Token: "bearer", IsAuthenticated: true}
			}

			switch guard.Evaluate(state, guard.Route{Path: r.URL.Path, AllowedRoles: roles}).Outcome {
			case guard.RedirectLogin:
				writeFailure(w, http.StatusUnauthorized, "unauthorized")
			case guard.RedirectUnauthorized:
				writeFailure(w, http.StatusForbidden, "forbidden", guard.ErrUnauthorized.Error())
			default:
				next(w, r)
			}
		}
	}
}

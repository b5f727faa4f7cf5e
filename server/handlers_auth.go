package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/storedesk/api"
	apperrors "github.com/jrsteele09/storedesk/internal/errors"
	"github.com/jrsteele09/storedesk/stores"
	"github.com/jrsteele09/storedesk/users"
	"github.com/rs/zerolog/log"
)

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "ok", map[string]string{"app": s.config.GetAppName()})
	}
}

// LoginHandler checks the credentials and returns the user with an access
// token that is not yet scoped to a store.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		if err := decodeBody(r, &req); err != nil {
			writeFailure(w, http.StatusBadRequest, "invalid request", err.Error())
			return
		}

		user, err := s.repos.Users.GetByEmail(strings.TrimSpace(req.Email))
		if err != nil || !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			writeFailure(w, http.StatusUnauthorized, "login failed", apperrors.ErrInvalidCredentials.Error())
			return
		}
		if user.Blocked {
			writeFailure(w, http.StatusForbidden, "login failed", apperrors.ErrUserBlocked.Error())
			return
		}

		accessToken, err := s.tokens.Issue(user, "")
		if err != nil {
			log.Err(err).Str("user_id", user.ID).Msg("issuing token")
			writeFailure(w, http.StatusInternalServerError, "login failed", apperrors.ErrInternal.Error())
			return
		}

		user.LastLogin = s.nowFunc()
		if err := s.repos.Users.Upsert(user); err != nil {
			log.Err(err).Str("user_id", user.ID).Msg("recording last login")
		}

		writeData(w, "logged in", api.LoginResponse{User: user.Profile(), AccessToken: accessToken})
	}
}

// RefreshStoreTokenHandler exchanges the caller's token for one scoped to the requested store.
func (s *Server) RefreshStoreTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.RefreshStoreTokenRequest
		if err := decodeBody(r, &req); err != nil || req.StoreID == "" {
			writeFailure(w, http.StatusBadRequest, "invalid request", "storeId is required")
			return
		}

		user := userFrom(r.Context())
		store, err := s.repos.Stores.Get(req.StoreID)
		if err != nil {
			writeFailure(w, http.StatusNotFound, "store switch failed", apperrors.ErrStoreNotFound.Error())
			return
		}
		if !store.Active {
			writeFailure(w, http.StatusForbidden, "store switch failed", "store is inactive")
			return
		}
		if !user.HasStore(store.ID) {
			writeFailure(w, http.StatusForbidden, "store switch failed", apperrors.ErrUnauthorizedStore.Error())
			return
		}

		accessToken, err := s.tokens.Issue(user, store.ID)
		if err != nil {
			log.Err(err).Str("user_id", user.ID).Str("store_id", store.ID).Msg("issuing store token")
			writeFailure(w, http.StatusInternalServerError, "store switch failed", apperrors.ErrInternal.Error())
			return
		}
		writeData(w, "token refreshed", api.TokenResponse{AccessToken: accessToken})
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "ok", userFrom(r.Context()).Profile())
	}
}

// StoresHandler lists the stores the caller belongs to.
func (s *Server) StoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		all, err := s.repos.Stores.List()
		if err != nil {
			writeFailure(w, http.StatusInternalServerError, "listing stores failed", apperrors.ErrInternal.Error())
			return
		}

		list := make([]stores.Store, 0, len(all))
		for _, store := range all {
			if user.HasStore(store.ID) {
				list = append(list, *store)
			}
		}
		writeData(w, "ok", list)
	}
}

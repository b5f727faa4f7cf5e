package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/storedesk/internal/errors"
	"github.com/jrsteele09/storedesk/users"
)

func (s *Server) ProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "ok", s.repos.Catalog.Products(claimsFrom(r.Context()).StoreID))
	}
}

func (s *Server) OrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "ok", s.repos.Catalog.Orders(claimsFrom(r.Context()).StoreID))
	}
}

// StaffHandler lists the users working in the token's store.
func (s *Server) StaffHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := s.repos.Users.List(claimsFrom(r.Context()).StoreID)
		if err != nil {
			writeFailure(w, http.StatusInternalServerError, "listing staff failed", apperrors.ErrInternal.Error())
			return
		}
		profiles := make([]users.Profile, 0, len(members))
		for _, u := range members {
			profiles = append(profiles, u.Profile())
		}
		writeData(w, "ok", profiles)
	}
}

// TasksHandler lists the store's tasks. Staff only see their own.
func (s *Server) TasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		assignee := ""
		if user.Role == users.RoleStaff {
			assignee = user.ID
		}
		writeData(w, "ok", s.repos.Catalog.Tasks(claimsFrom(r.Context()).StoreID, assignee))
	}
}

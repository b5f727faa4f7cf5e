package server

import (
	"net/http"

	"github.com/jrsteele09/storedesk/users"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRefreshStore, ChainMiddleware(s.RefreshStoreTokenHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteStores, ChainMiddleware(s.StoresHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Store-scoped resources
	storeScoped := func(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
		return s.APIMiddleware(append([]func(http.HandlerFunc) http.HandlerFunc{s.RequireAuth(), s.RequireStore()}, mw...)...)
	}
	s.RegisterRouteHandler("GET "+RouteProducts, ChainMiddleware(s.ProductsHandler(), storeScoped()...))
	s.RegisterRouteHandler("GET "+RouteOrders, ChainMiddleware(s.OrdersHandler(), storeScoped()...))
	s.RegisterRouteHandler("GET "+RouteStaff, ChainMiddleware(s.StaffHandler(), storeScoped(s.RequireRole(users.RoleOwner, users.RoleManager))...))
	s.RegisterRouteHandler("GET "+RouteTasks, ChainMiddleware(s.TasksHandler(), storeScoped()...))

	// Preflight for every API route
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.APIMiddleware()...))
}

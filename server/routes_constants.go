package server

import "github.com/jrsteele09/storedesk/api"

// Route path constants. The API routes are shared with the client package.
const (
	RouteHealth = "/health"

	RouteAuthLogin        = api.RouteAuthLogin
	RouteAuthRefreshStore = api.RouteAuthRefreshStore
	RouteAuthMe           = api.RouteAuthMe
	RouteStores           = api.RouteStores

	RouteProducts = api.RouteProducts
	RouteOrders   = api.RouteOrders
	RouteStaff    = api.RouteStaff
	RouteTasks    = api.RouteTasks
)

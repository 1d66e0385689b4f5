package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin    = "/login"
	RouteCallback = "/callback"
	RouteLogout   = "/logout"

	// Pages
	RouteHome             = "/"
	RouteProductsTraining = "/products-training"
	RouteNewStation       = "/new-station"
	RouteMyAccount        = "/my-account"
	RouteAddCamera        = "/add-camera"
	RouteCameraList       = "/Camera-list"
	RouteDatasetList      = "/Dataset-List"

	// Operational Routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RoutePublic = "/public/{file...}"
)

// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and builds the mux router

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/markalston/route-economics/backend/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path template (e.g., "/api/v1/routes/{source}/{dest}")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodPost, Path: "/api/v1/recompute", Handler: h.Recompute},

		// Network
		{Method: http.MethodGet, Path: "/api/v1/airports", Handler: h.Airports},
		{Method: http.MethodGet, Path: "/api/v1/airports/{icao}", Handler: h.Airport},
		{Method: http.MethodGet, Path: "/api/v1/aircraft", Handler: h.Aircraft},
		{Method: http.MethodGet, Path: "/api/v1/taxi-times", Handler: h.TaxiTimes},
		{Method: http.MethodGet, Path: "/api/v1/local-times", Handler: h.LocalTimes},
		{Method: http.MethodGet, Path: "/api/v1/network.kml", Handler: h.NetworkKML},

		// Grids
		{Method: http.MethodGet, Path: "/api/v1/distances", Handler: h.Distances},
		{Method: http.MethodGet, Path: "/api/v1/demand", Handler: h.Demand},
		{Method: http.MethodGet, Path: "/api/v1/flight-times/{aircraft}", Handler: h.FlightTimes},
		{Method: http.MethodGet, Path: "/api/v1/costs/{aircraft}", Handler: h.Costs},

		// Analysis
		{Method: http.MethodGet, Path: "/api/v1/hubs", Handler: h.Hubs},
		{Method: http.MethodGet, Path: "/api/v1/routes/{source}/{dest}", Handler: h.Route},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}

// NewRouter registers every route behind recovery, logging, and CORS.
// OPTIONS is accepted on every path so preflight requests reach the CORS middleware.
func (h *Handler) NewRouter(allowedOrigins []string) *mux.Router {
	router := mux.NewRouter()
	cors := middleware.CORSWithConfig(allowedOrigins)

	for _, route := range h.Routes() {
		handler := middleware.Chain(route.Handler, middleware.Recover, middleware.LogRequest, cors)
		router.HandleFunc(route.Path, handler).Methods(route.Method, http.MethodOptions)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return router
}

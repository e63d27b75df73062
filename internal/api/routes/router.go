package routes

import (
	"net/http"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/api/handlers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/api/middleware"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler *handlers.SearchHandler
	metrics       *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(searchHandler *handlers.SearchHandler, metrics *observability.Metrics) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		searchHandler: searchHandler,
		metrics:       metrics,
	}
}

// SetupRoutes registers all routes and returns the wrapped handler
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Search endpoints
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("GET /api/search/suggestions", r.searchHandler.Suggestions)
	r.mux.HandleFunc("POST /api/search/index", r.searchHandler.IndexEntity)
	r.mux.HandleFunc("POST /api/search/reindex", r.searchHandler.RebuildIndexes)

	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	return handler
}

package routes

import (
	"net/http"

	"github.com/carelink-cm/carelink-backend/internal/api/handlers"
	"github.com/carelink-cm/carelink-backend/internal/api/middleware"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	doctorHandler      *handlers.DoctorHandler
	suggestionHandler  *handlers.SuggestionHandler
	historyHandler     *handlers.HistoryHandler
	appointmentHandler *handlers.AppointmentHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	doctorHandler *handlers.DoctorHandler,
	suggestionHandler *handlers.SuggestionHandler,
	historyHandler *handlers.HistoryHandler,
	appointmentHandler *handlers.AppointmentHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		doctorHandler:      doctorHandler,
		suggestionHandler:  suggestionHandler,
		historyHandler:     historyHandler,
		appointmentHandler: appointmentHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Doctor endpoints
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/doctors/search", r.doctorHandler.SearchDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)

	// Search endpoints
	r.mux.HandleFunc("GET /api/search/suggestions", r.suggestionHandler.GetSuggestions)
	r.mux.HandleFunc("GET /api/search/history", r.historyHandler.GetHistory)
	r.mux.HandleFunc("POST /api/search/history", r.historyHandler.CommitSearch)
	r.mux.HandleFunc("DELETE /api/search/history", r.historyHandler.ClearHistory)

	// Appointment endpoints
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.CancelAppointment)

	// Analytics endpoints
	r.mux.HandleFunc("GET /api/analytics/zero-result-queries", r.doctorHandler.GetZeroResultQueries)
	r.mux.HandleFunc("GET /api/analytics/top-queries", r.doctorHandler.GetTopQueries)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}

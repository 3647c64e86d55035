package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/almanac-api/internal/config"
	"github.com/zapponejosh/almanac-api/internal/metrics"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /metrics
//	GET    /api/v1/almanac/today              ?hour=H&format=card
//	GET    /api/v1/almanac/date/{date}        ?hour=H&format=card
//	GET    /api/v1/almanac/range              ?start=YYYY-MM-DD&end=YYYY-MM-DD
//	GET    /api/v1/lunar/{year}
//	GET    /api/v1/lunar/{year}/{month}/{day} ?leap=true
//	GET    /api/v1/terms/{year}
//	GET    /api/v1/observances                ?limit=&offset=
//	POST   /api/v1/observances                (API key)
//	GET    /api/v1/observances/{id}
//	DELETE /api/v1/observances/{id}           (API key)
//	GET    /api/v1/observances/{id}/occurrences ?year=Y
func SetupRoutes(handlers *Handlers, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(m),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	requireKey := AuthMiddleware(cfg, logger)

	// ==========================================================================
	// Operational routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Calendar routes (public)
		// ======================================================================
		r.Get("/almanac/today", handlers.GetToday)
		r.Get("/almanac/date/{date}", handlers.GetDate)
		r.Get("/almanac/range", handlers.GetRange)

		r.Get("/lunar/{year}", handlers.GetLunarYear)
		r.Get("/lunar/{year}/{month}/{day}", handlers.ConvertLunar)

		r.Get("/terms/{year}", handlers.GetTerms)

		// ======================================================================
		// Observance routes (writes need the API key)
		// ======================================================================
		r.Route("/observances", func(r chi.Router) {
			r.Get("/", handlers.ListObservances)
			r.With(requireKey).Post("/", handlers.CreateObservance)
			r.Get("/{id}", handlers.GetObservance)
			r.With(requireKey).Delete("/{id}", handlers.DeleteObservance)
			r.Get("/{id}/occurrences", handlers.GetOccurrences)
		})
	})

	return r
}

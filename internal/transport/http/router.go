// Package http wires the analysis engine to its HTTP surface: dataset
// upload/analysis plus the two projection queries.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"oeminv/internal/middleware"
)

// NewRouter builds the chi router with the standard middleware chain and
// all analysis routes.
func NewRouter(handler *AnalysisHandler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/healthz", HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", handler.Analyze)
		r.Post("/predict/price", handler.PredictPrice)
		r.Post("/predict/replenishments", handler.PredictReplenishments)
	})

	return r
}

// HealthCheck reports liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ruon90/PCBuildMate/internal/events"
	"github.com/Ruon90/PCBuildMate/internal/store"
)

func NewRouter(s store.CatalogStore, ev events.Client, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	builds := NewBuildsHandler(s, ev, logger)
	parts := NewPartsHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/builds/search", builds.Search)
		r.Get("/parts/{category}", parts.List)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

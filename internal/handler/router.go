package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/eventos/internal/config"
	"github.com/Shivanand-hulikatti/eventos/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter builds the HTTP surface: global middleware, health and metrics
// endpoints, and the event routes mounted under cfg.Server.RoutePrefix.
func NewRouter(cfg config.Config, logger zerolog.Logger, events *EventHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(logger))
	r.Use(CORS(cfg.CORS))
	r.Use(metrics.HTTPMiddleware)

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	r.Get("/health", events.HealthCheck)
	r.Handle("/metrics", metrics.Handler())

	r.Route(cfg.Server.RoutePrefix, func(r chi.Router) {
		r.Use(RateLimit(cfg.RateLimit))
		r.NotFound(NotFound)
		r.MethodNotAllowed(NotFound)

		r.Get("/", events.ListEvents)
		r.Get("/{id}", events.GetEvent)
		r.Post("/", events.CreateEvent)
		r.Put("/", events.UpdateEvent)
		r.Delete("/{id}", events.DeleteEvent)
	})

	return r
}

// Package http wires the screening API's route tree and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/prometheus"
	"github.com/lumenrisk/entity-screening/internal/interfaces/http/handlers"
	"github.com/lumenrisk/entity-screening/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	ProfileHandler   *handlers.ProfileHandler
	ScreeningHandler *handlers.ScreeningHandler
	HealthHandler    *handlers.HealthHandler

	// Middleware. CORS is applied only when CORSConfig is non-nil.
	CORSConfig    *middleware.CORSConfig
	LoggingConfig *middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter constructs the route tree: public health endpoints, the metrics
// scrape endpoint and the /api/v1 resource groups.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSConfig != nil {
		r.Use(middleware.CORS(*cfg.CORSConfig))
	}
	logCfg := middleware.DefaultLoggingConfig()
	if cfg.LoggingConfig != nil {
		logCfg = *cfg.LoggingConfig
	}
	r.Use(middleware.RequestLogging(cfg.Logger, logCfg))

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerProfileRoutes(api, cfg.ProfileHandler)
		registerScreeningRoutes(api, cfg.ScreeningHandler)
	})

	return r
}

// registerProfileRoutes mounts profile resource endpoints under /profiles.
func registerProfileRoutes(r chi.Router, h *handlers.ProfileHandler) {
	if h == nil {
		return
	}
	r.Route("/profiles", func(pr chi.Router) {
		pr.Get("/", h.List)
		pr.Post("/", h.Create)

		pr.Route("/{profileID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Put("/", h.Update)
			item.Delete("/", h.Delete)
			item.Put("/default", h.SetDefault)
		})
	})
}

// registerScreeningRoutes mounts assessment and classification endpoints.
func registerScreeningRoutes(r chi.Router, h *handlers.ScreeningHandler) {
	if h == nil {
		return
	}
	r.Post("/screenings/assess", h.Assess)
	r.Post("/factors/classify", h.Classify)
	r.Get("/factors/{factorID}", h.GetFactor)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/ports"
)

// RouterConfig carries the handler dependencies the composition root wires.
type RouterConfig struct {
	Repo                   ports.StationRepository
	Routing                ports.RoutingProvider
	Vehicle                domain.Vehicle
	CorridorHalfWidthMiles float64
	Metrics                *metrics.Collector
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	planHandler := &handlers.PlanHandler{
		Repo:                   cfg.Repo,
		Routing:                cfg.Routing,
		Vehicle:                cfg.Vehicle,
		CorridorHalfWidthMiles: cfg.CorridorHalfWidthMiles,
		Metrics:                cfg.Metrics,
	}
	healthHandler := &handlers.HealthHandler{Repo: cfg.Repo}

	r.Post("/api/route", planHandler.Plan)
	r.Get("/api/health", healthHandler.Health)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	return r
}

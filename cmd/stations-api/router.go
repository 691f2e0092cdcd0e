// Package main provides the API router setup.
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iRail/stations/cmd/stations-api/handlers"
	"github.com/iRail/stations/cmd/stations-api/middleware"
	"github.com/iRail/stations/internal/observability"
)

// ReadyChecker reports whether the dataset is loaded.
type ReadyChecker interface {
	Ready() bool
}

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, engine handlers.Searcher, ready ReadyChecker, cfg *AppConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceID)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"stations"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !ready.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	stationsHandler := handlers.NewStationsHandler(logger, engine)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stations", func(r chi.Router) {
			r.Get("/", stationsHandler.Search)
			r.Get("/{id}", stationsHandler.Get)
		})
		r.Get("/stations.geojson", stationsHandler.GeoJSON)
		r.Post("/cache/clear", stationsHandler.ClearCache)
	})

	return r
}

// AppConfig holds router settings.
type AppConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// DefaultAppConfig returns default configuration values.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		RequestTimeout: 15 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

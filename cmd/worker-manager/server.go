// cmd/worker-manager/server.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/common/config"
	"consultation-workers/internal/common/logger"
)

// HealthChecker probes the workflow engine connection.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.GetDuration(cfg.ReadTimeout),
		WriteTimeout:      config.GetDuration(cfg.WriteTimeout),
	}
}

func newRouter(store *catalog.Store, engine HealthChecker, log logger.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":         "ready",
			"catalogVersion": store.Version(),
			"packages":       store.Len(),
			"time":           time.Now().Format(time.RFC3339),
		}
		if store.Len() == 0 {
			body["status"] = "catalog empty"
			writeStatus(w, http.StatusServiceUnavailable, body)
			return
		}
		if engine != nil {
			if err := engine.HealthCheck(r.Context()); err != nil {
				log.Warn("readiness check failed", map[string]interface{}{"error": err.Error()})
				body["status"] = "workflow engine unavailable"
				writeStatus(w, http.StatusServiceUnavailable, body)
				return
			}
		}
		writeStatus(w, http.StatusOK, body)
	})

	r.Handle("/metrics", promhttp.Handler())
	catalog.RegisterRoutes(r, store)
	return r
}

func writeStatus(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

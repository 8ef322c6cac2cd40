// Package api provides the HTTP server for Daily Check. All state lives in
// the tracker service and SQLite; handlers are thin translation layers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dailycheck-app/dailycheck/internal/app/engagement"
	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
	"github.com/dailycheck-app/dailycheck/internal/health"
)

// Deps carries the services the API exposes.
type Deps struct {
	Tracker               *tracker.Service
	Achievements          *engagement.AchievementService
	Notifications         *engagement.NotificationService
	CommissionStatus      domain.CommissionStatus
	QualificationOverride string
	CORSOrigins           []string
	SaveGoals             func(domain.Goals) error // nil = in-memory only
	Health                *health.Checker          // nil = static ok
}

// Server is the Daily Check HTTP API server.
type Server struct {
	deps           Deps
	rates          domain.RateTable
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(deps Deps) *Server {
	return &Server{deps: deps, rates: domain.DefaultRateTable()}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Health == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		status := http.StatusOK
		if !s.deps.Health.IsHealthy() {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]interface{}{
			"healthy": s.deps.Health.IsHealthy(),
			"checks":  s.deps.Health.Statuses(),
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "Daily Check is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/logs", s.handleListLogs)
		r.Delete("/logs", s.handleDeleteRange)
		r.Get("/logs/{date}", s.handleDayLog)
		r.Post("/logs/{date}", s.handleApply)

		r.Get("/progress/{activity}", s.handleProgress)

		r.Get("/goals", s.handleGetGoals)
		r.Put("/goals", s.handlePutGoals)

		r.Get("/achievements", s.handleAchievements)
		r.Get("/career", s.handleCareer)
		r.Get("/earnings", s.handleEarnings)
		r.Get("/report", s.handleReport)

		r.Post("/leads", s.handleCaptureLead)
		r.Patch("/leads/{id}", s.handleUpdateLead)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)

		r.Get("/share", s.handleShareExport)
		r.Post("/share/decode", s.handleShareDecode)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the local companion UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

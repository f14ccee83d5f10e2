// Package debugserver exposes a small chi-routed HTTP surface for inspecting
// a running engine: a liveness probe, the last run's token report, and the
// engine's Prometheus metrics.
package debugserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agenthub/runtime/internal/obsmetrics"
)

// Server serves operational endpoints over HTTP via a chi router.
type Server struct {
	router  chi.Router
	metrics *obsmetrics.Metrics

	mu         sync.RWMutex
	lastReport string
	lastRunAt  time.Time
}

// New builds a debug server, optionally exposing metrics at /metrics when
// metrics is non-nil.
func New(metrics *obsmetrics.Metrics) *Server {
	s := &Server{metrics: metrics}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/report", s.handleReport)
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}
	s.router = r
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetLastReport records the most recently completed run's token report, to
// be served from /report until the next run replaces it.
func (s *Server) SetLastReport(report string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReport = report
	s.lastRunAt = time.Now()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report, runAt := s.lastReport, s.lastRunAt
	s.mu.RUnlock()

	if report == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Last-Run-At", runAt.Format(time.RFC3339))
	w.Write([]byte(report))
}

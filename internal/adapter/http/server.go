package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/marine-zones-etl/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotProvider returns the latest marine zone snapshot, and false if none is loaded yet.
type SnapshotProvider interface {
	Snapshot() (domain.Snapshot, bool)
}

// ZoneSource is what the server needs from the pipeline.
type ZoneSource interface {
	ReadinessChecker
	SnapshotProvider
}

// Server exposes the marine zone API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type zonesResponse struct {
	Success   bool                `json:"success"`
	Zones     []domain.MarineZone `json:"zones"`
	Total     int                 `json:"total"`
	FetchedAt time.Time           `json:"fetched_at"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewServer creates an HTTP server with /api/marine-zones, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, source ZoneSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /api/marine-zones", handleZones(source))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(source))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleZones serves the latest snapshot, optionally narrowed with ?prefix=ANZ.
func handleZones(provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("prefix")))
		if prefix != "" && !isMarinePrefix(prefix) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "prefix must be one of " + strings.Join(domain.MarinePrefixes, ", "),
			})
			return
		}

		snap, ok := provider.Snapshot()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "marine zones not loaded yet"})
			return
		}

		zones := snap.Zones
		if prefix != "" {
			zones = snap.FilterByPrefix(prefix)
		}
		if zones == nil {
			zones = []domain.MarineZone{}
		}
		writeJSON(w, http.StatusOK, zonesResponse{
			Success:   true,
			Zones:     zones,
			Total:     len(zones),
			FetchedAt: snap.FetchedAt,
		})
	}
}

func isMarinePrefix(prefix string) bool {
	for _, p := range domain.MarinePrefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}

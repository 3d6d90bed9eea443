// Package http provides the HTTP middleware, health endpoints and metrics
// wiring shared by the anime catalog and account handlers.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// CacheStats is the view of the response cache reported by /health.
type CacheStats interface {
	Len() int
	TTL() time.Duration
}

// Circuit is the view of the upstream circuit breaker reported by /health.
type Circuit interface {
	Name() string
	State() gobreaker.State
}

// HealthHandler reports the state of the response cache, the upstream circuit
// and, when accounts are enabled, the database.
//
// An open circuit is reported as degraded with 200 because cached views are still
// served. A failing database makes the whole report unhealthy (503).
type HealthHandler struct {
	DB      *sql.DB // nil in standalone mode
	Cache   CacheStats
	Circuit Circuit
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	status := statusHealthy

	if h.DB != nil {
		c := checkDatabase(ctx, h.DB)
		checks["database"] = c
		status = worst(status, c.Status)
	}
	if h.Cache != nil {
		checks["cache"] = CheckStatus{
			Status: statusHealthy,
			Details: map[string]any{
				"entries":     h.Cache.Len(),
				"ttl_seconds": int(h.Cache.TTL().Seconds()),
			},
		}
	}
	if h.Circuit != nil {
		c := checkCircuit(h.Circuit)
		checks["upstream"] = c
		status = worst(status, c.Status)
	}

	code := http.StatusOK
	if status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	writeHealth(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func checkDatabase(ctx context.Context, db *sql.DB) CheckStatus {
	if err := db.PingContext(ctx); err != nil {
		slog.Warn("health: database ping failed", slog.Any("error", err))
		return CheckStatus{Status: statusUnhealthy, Message: "database unreachable"}
	}

	stats := db.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80.0 {
			return CheckStatus{
				Status:  statusDegraded,
				Message: "connection pool utilization above 80%",
				Details: details,
			}
		}
	}

	return CheckStatus{Status: statusHealthy, Details: details}
}

func checkCircuit(c Circuit) CheckStatus {
	state := c.State()
	details := map[string]any{"circuit": c.Name(), "state": state.String()}

	switch state {
	case gobreaker.StateOpen:
		return CheckStatus{Status: statusDegraded, Message: "upstream circuit open", Details: details}
	case gobreaker.StateHalfOpen:
		return CheckStatus{Status: statusDegraded, Message: "upstream circuit probing", Details: details}
	default:
		return CheckStatus{Status: statusHealthy, Details: details}
	}
}

func worst(a, b string) string {
	rank := map[string]int{statusHealthy: 0, statusDegraded: 1, statusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

func writeHealth(w http.ResponseWriter, code int, body HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// Without a database the service is ready as soon as it is listening.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.DB.PingContext(ctx); err != nil {
			slog.Warn("ready: database ping failed", slog.Any("error", err))
			http.Error(w, "database not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler handles Kubernetes liveness probe requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}

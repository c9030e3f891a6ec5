// Package http provides the HTTP surface of the summary API: cross-cutting
// middleware, health and readiness probes, and Prometheus instrumentation.
// Route handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"briefly/internal/handler/http/respond"
	"briefly/internal/resilience/circuitbreaker"
)

// Pinger is implemented by storage that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClientCounter reports the number of clients tracked by a rate limiter.
type ClientCounter interface {
	ActiveClients() int
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthHandler reports storage connectivity, content source circuit breakers
// and rate limiter load.
//
// An unreachable store makes the service unhealthy (503). An open breaker only
// degrades it, since raw text summaries keep working.
type HealthHandler struct {
	// Storage is nil when persistence is disabled.
	Storage       Pinger
	StorageDriver string
	// DB adds connection pool statistics for SQL drivers.
	DB          *sql.DB
	Breakers    []*circuitbreaker.CircuitBreaker
	RateLimiter ClientCounter
	Version     string
}

// ServeHTTP performs health checks and returns the application health status.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"storage":         h.checkStorage(ctx),
		"content_sources": h.checkBreakers(),
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  statusHealthy,
			Details: map[string]any{"active_clients": h.RateLimiter.ActiveClients()},
		}
	}

	status := statusHealthy
	statusCode := http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case statusUnhealthy:
			status = statusUnhealthy
			statusCode = http.StatusServiceUnavailable
		case statusDegraded:
			if status == statusHealthy {
				status = statusDegraded
			}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) CheckStatus {
	if h.Storage == nil {
		return CheckStatus{Status: statusHealthy, Message: "persistence disabled"}
	}

	details := map[string]any{"driver": h.StorageDriver}
	if err := h.Storage.Ping(ctx); err != nil {
		slog.Warn("health: storage ping failed",
			slog.String("driver", h.StorageDriver),
			slog.String("error", respond.SanitizeError(err)))
		return CheckStatus{Status: statusUnhealthy, Message: "storage unreachable", Details: details}
	}

	if h.DB == nil {
		return CheckStatus{Status: statusHealthy, Details: details}
	}

	stats := h.DB.Stats()
	details["max_open_connections"] = stats.MaxOpenConnections
	details["open_connections"] = stats.OpenConnections
	details["in_use"] = stats.InUse
	details["idle"] = stats.Idle
	details["wait_count"] = stats.WaitCount
	details["wait_duration_ms"] = stats.WaitDuration.Milliseconds()

	// Guard against zero division when MaxOpenConnections is 0 (unlimited)
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

func (h *HealthHandler) checkBreakers() CheckStatus {
	details := make(map[string]any, len(h.Breakers))
	status := statusHealthy
	for _, cb := range h.Breakers {
		if cb == nil {
			continue
		}
		details[cb.Name()] = cb.State().String()
		if cb.IsOpen() {
			status = statusDegraded
		}
	}

	check := CheckStatus{Status: status, Details: details}
	if status == statusDegraded {
		check.Message = "one or more content sources are unavailable"
	}
	return check
}

// ReadyHandler handles Kubernetes readiness probe requests.
// A nil Storage is always ready.
type ReadyHandler struct {
	Storage Pinger
}

// ServeHTTP returns 200 "ready", or 503 when storage cannot be reached.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Storage != nil {
		if err := h.Storage.Ping(ctx); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Warn("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK if the process is able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Warn("alive: failed to write response", slog.Any("error", err))
	}
}

package rest

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/frahmantamala/expense-api/internal/transport"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

const readinessTimeout = 2 * time.Second

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// ReadinessCheck returns nil when the dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// SystemHandler serves the endpoints that sit outside the API resources:
// liveness, readiness and the fallbacks for unmatched routes.
type SystemHandler struct {
	*transport.BaseHandler
	checks map[string]ReadinessCheck
}

func NewSystemHandler(db *sql.DB, lg *slog.Logger) *SystemHandler {
	checks := map[string]ReadinessCheck{}
	if db != nil {
		checks["database"] = db.PingContext
	}
	return &SystemHandler{BaseHandler: transport.NewBaseHandler(lg), checks: checks}
}

func (h *SystemHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness answers 503 when any check fails. Failure text stays in the log.
func (h *SystemHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: HealthHealthy, Components: make(map[string]CheckEntry, len(names))}
	for _, name := range names {
		start := time.Now()
		err := h.checks[name](ctx)
		entry := CheckEntry{
			Status:     HealthHealthy,
			CheckedAt:  time.Now(),
			DurationMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			h.Logger.WarnContext(ctx, "readiness check failed", "component", name, "error", err)
			entry.Status = HealthUnhealthy
			entry.Message = "unavailable"
			resp.Status = HealthUnhealthy
		}
		resp.Components[name] = entry
	}
	resp.CheckedAt = time.Now()

	status := http.StatusOK
	if resp.Status == HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.WriteJSON(w, status, resp)
}

func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteError(w, http.StatusNotFound, "Route not found")
}

func (h *SystemHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

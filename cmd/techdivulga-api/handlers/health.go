package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rumiadrian30/techdivulga/internal/observability"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	logger  *observability.Logger
	service string
	db      Pinger
}

// NewHealthHandler creates a new health handler. db may be nil.
func NewHealthHandler(logger *observability.Logger, service string, db Pinger) *HealthHandler {
	return &HealthHandler{logger: logger, service: service, db: db}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": h.service})
}

// Ready handles GET /ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.WithContext(r.Context()).Warn().Err(err).Msg("Database not reachable")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

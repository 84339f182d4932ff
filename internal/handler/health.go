package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/moviweb/internal/domain"
)

// HealthHandler reports liveness together with database reachability.
type HealthHandler struct {
	db domain.Database
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db domain.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealthz responds with 200 and {"status":"ok"} when the database
// answers a ping, and 503 otherwise.
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.Error("health check ping", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

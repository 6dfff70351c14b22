package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"conversa/internal/domain/repositories"
	"conversa/internal/httputil"
)

const healthPingTimeout = 2 * time.Second

// HealthResponse is the body of GET /
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_conectado"`
}

// HealthHandler reports liveness and store reachability
type HealthHandler struct {
	checker repositories.HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker repositories.HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// Health always answers 200; db_conectado reflects a bounded store ping
// GET /
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	connected := true
	if err := h.checker.Ping(ctx); err != nil {
		connected = false
		h.logger.Warn("store ping failed", "error", err)
	}

	httputil.RespondJSON(w, http.StatusOK, HealthResponse{Status: "online", DBConnected: connected})
}

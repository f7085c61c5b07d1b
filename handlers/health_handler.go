package handlers

import (
	"context"
	"net/http"
	"time"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// ServeHTTP reports 503 while the database is unreachable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, state := http.StatusOK, "ok"
	if err := h.db.PingContext(ctx); err != nil {
		status, state = http.StatusServiceUnavailable, "database unavailable"
	}
	if err := writeJSON(w, status, jsonResponse{"status": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package api

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether Redis answers.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		h.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "redis": err.Error()})
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

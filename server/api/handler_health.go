package api

import (
	"net/http"
	"time"
)

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleProviderHealth(w http.ResponseWriter, r *http.Request) {
	probe := r.URL.Query().Get("probe") == "true"

	report := h.Health.Check(r.Context(), probe)

	code := http.StatusOK

	if report.Degraded() {
		code = http.StatusServiceUnavailable
	}

	writeJson(w, code, envelope{
		Success: code == http.StatusOK,
		Data:    report,
	})
}

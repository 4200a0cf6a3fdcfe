// ABOUTME: Health endpoint reporting pipeline readiness
// ABOUTME: Includes result age, run shape, and which artifacts were loaded from storage

package handlers

import (
	"net/http"
	"time"
)

// Health reports whether a result is available and how it was produced.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":    "computing",
		"airportdb": "not_configured",
	}
	if h.cfg != nil && h.cfg.AirportDBConfigured() {
		resp["airportdb"] = "ok"
	}

	if res, err := h.current(); err == nil {
		resp["status"] = "ok"
		resp["generated_at"] = res.GeneratedAt.Format(time.RFC3339)
		resp["distance_method"] = res.Method
		resp["fingerprint"] = res.Fingerprint
		resp["airports"] = len(res.Airports)
		resp["aircraft"] = len(res.Aircraft)
		resp["cached"] = res.Cached
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ABOUTME: Handler for recomputing pipeline artifacts
// ABOUTME: Reruns the pipeline, optionally rebuilding stored artifacts

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// RecomputeRequest is the optional body of a recompute call
type RecomputeRequest struct {
	Overwrite *bool `json:"overwrite,omitempty"`
}

// Recompute reruns the pipeline. Derived artifacts are rebuilt unless the body
// sets overwrite to false, in which case stored artifacts are reused.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	overwrite := true

	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	var req RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Overwrite != nil {
		overwrite = *req.Overwrite
	}

	res, err := h.Compute(r.Context(), overwrite)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"generated_at": res.GeneratedAt,
		"cached":       res.Cached,
	})
}

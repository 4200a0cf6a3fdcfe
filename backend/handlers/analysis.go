// ABOUTME: Handlers for hub ranking and per-route analysis
// ABOUTME: Ranks airports by inbound demand and summarizes one directed pair

package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/markalston/route-economics/backend/export"
	"github.com/markalston/route-economics/backend/services"
)

// Hubs returns airports ranked by total inbound daily demand, highest first.
// limit trims the list; format=map returns an object keyed by airport in rank order.
func (h *Handler) Hubs(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	ranks := res.HubRankings
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		if limit < len(ranks) {
			ranks = ranks[:limit]
		}
	}

	if r.URL.Query().Get("format") != "map" {
		h.writeJSON(w, http.StatusOK, ranks)
		return
	}

	var buf bytes.Buffer
	if err := export.HubRankingsJSON(&buf, ranks); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Route returns distance, demand, and each aircraft's time and cost for one pair.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	source, dest := vars["source"], vars["dest"]
	for _, id := range []string{source, dest} {
		if err := services.ValidateAirportID(id); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	summary, err := res.Route(source, dest)
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

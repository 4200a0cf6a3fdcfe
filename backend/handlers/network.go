// ABOUTME: Handlers for the airport network itself
// ABOUTME: Airports, fleet, taxi times, local clocks, and the KML network map

package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/markalston/route-economics/backend/export"
	"github.com/markalston/route-economics/backend/services"
)

// Airports returns every airport of the current run in table order.
func (h *Handler) Airports(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Airports)
}

// Airport returns one airport with its taxi time.
func (h *Handler) Airport(w http.ResponseWriter, r *http.Request) {
	icao := mux.Vars(r)["icao"]
	if err := services.ValidateAirportID(icao); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	airport, ok := res.Airport(icao)
	if !ok {
		writeError(w, "Airport not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"airport":      airport,
		"taxi_minutes": res.TaxiTimes[icao],
	})
}

// Aircraft returns the fleet the current run was computed for.
func (h *Handler) Aircraft(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Aircraft)
}

// TaxiTimes returns taxi minutes per airport.
func (h *Handler) TaxiTimes(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res.TaxiTimes)
}

// LocalTimes returns the wall-clock time at every airport.
func (h *Handler) LocalTimes(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	times, err := services.LocalTimes(res.Airports, time.Now())
	if err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, times)
}

// NetworkKML returns the hub route network as a KML document.
func (h *Handler) NetworkKML(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.NetworkKML(&buf, res); err != nil {
		writeErrorFor(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ABOUTME: Handlers for the square airport-by-airport artifacts
// ABOUTME: Distances, demand, flight times, and costs as JSON or CSV

package handlers

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/markalston/route-economics/backend/export"
	"github.com/markalston/route-economics/backend/models"
	"github.com/markalston/route-economics/backend/services"
)

// Distances returns the distance grid in nautical miles; -1 marks unserved pairs.
func (h *Handler) Distances(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeGrid(w, r, res.Distances, res.Distances, export.FormatFloat)
}

// Demand returns daily passengers per directed pair.
func (h *Handler) Demand(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeGrid(w, r, res.Demand, res.Demand, export.FormatInt)
}

// FlightTimes returns gate-to-gate minutes for one aircraft type.
// With format=csv and human=true cells are rendered as HH:MM:SS.
func (h *Handler) FlightTimes(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	aircraft := mux.Vars(r)["aircraft"]
	table, ok := res.FlightTimes[aircraft]
	if !ok {
		writeError(w, "Unknown aircraft type", http.StatusNotFound)
		return
	}

	format := export.FormatFloat
	if r.URL.Query().Get("human") == "true" {
		format = services.FormatHMS
	}
	writeGrid(w, r, table, table.Minutes, format)
}

// Costs returns the per-flight cost grid in USD for one aircraft type.
func (h *Handler) Costs(w http.ResponseWriter, r *http.Request) {
	res, err := h.current()
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	aircraft := mux.Vars(r)["aircraft"]
	grid, ok := res.Costs[aircraft]
	if !ok {
		writeError(w, "Unknown aircraft type", http.StatusNotFound)
		return
	}
	writeGrid(w, r, grid, grid, export.FormatFloat)
}

// writeGrid answers with body as JSON, or with grid as CSV when format=csv.
func writeGrid[T any](w http.ResponseWriter, r *http.Request, body any, grid *models.Grid[T], format func(T) string) {
	if r.URL.Query().Get("format") != "csv" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		encodeJSON(w, body)
		return
	}

	var buf bytes.Buffer
	if err := export.GridCSV(&buf, grid, format); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

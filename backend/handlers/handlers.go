// ABOUTME: HTTP handlers for the route economics API
// ABOUTME: Holds the latest pipeline result and recomputes it on demand

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/markalston/route-economics/backend/cache"
	"github.com/markalston/route-economics/backend/config"
	"github.com/markalston/route-economics/backend/models"
	"github.com/markalston/route-economics/backend/services"
)

var errNotReady = errors.New("results not computed yet")

type Handler struct {
	cfg      *config.Config
	store    cache.Store
	provider services.AirportProvider
	opts     services.PipelineOptions

	// runMu serializes pipeline runs; mu guards result.
	runMu  sync.Mutex
	mu     sync.RWMutex
	result *services.Result
}

// NewHandler creates a handler over the given artifact store.
// A nil config runs the default assumptions against the embedded seed airports.
func NewHandler(cfg *config.Config, store cache.Store) (*Handler, error) {
	h := &Handler{
		cfg:      cfg,
		store:    store,
		provider: services.SeedProvider{},
		opts:     services.DefaultPipelineOptions(),
	}

	if cfg != nil {
		opts, err := cfg.PipelineOptions()
		if err != nil {
			return nil, err
		}
		h.opts = opts
		h.provider = cfg.AirportProvider()
	}

	return h, nil
}

// Compute runs the pipeline and publishes its result. With overwrite set every
// derived artifact is rebuilt; stored airports are kept.
func (h *Handler) Compute(ctx context.Context, overwrite bool) (*services.Result, error) {
	h.runMu.Lock()
	defer h.runMu.Unlock()

	memo := cache.NewMemo(h.store, overwrite, services.KeyAirports)
	pipeline, err := services.NewPipeline(h.provider, memo, h.opts)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(ctx)
	if err != nil {
		slog.Error("Pipeline failed", "error", err)
		return nil, err
	}

	h.mu.Lock()
	h.result = res
	h.mu.Unlock()
	return res, nil
}

func (h *Handler) current() (*services.Result, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.result == nil {
		return nil, errNotReady
	}
	return h.result, nil
}

// writeJSON writes a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeJSON(w, data)
}

func encodeJSON(w io.Writer, data any) {
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeErrorFor maps pipeline errors onto HTTP status codes
func writeErrorFor(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNotReady):
		writeError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrUnknownAirport):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNoReachableDestinations),
		errors.Is(err, models.ErrInvalidCoordinate),
		errors.Is(err, models.ErrUnknownJurisdiction):
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

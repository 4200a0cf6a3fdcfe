// ABOUTME: HTTP client for the route economics API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the API client for the route economics backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status         string          `json:"status"`
	AirportDB      string          `json:"airportdb"`
	GeneratedAt    string          `json:"generated_at,omitempty"`
	DistanceMethod string          `json:"distance_method,omitempty"`
	Airports       int             `json:"airports,omitempty"`
	Aircraft       int             `json:"aircraft,omitempty"`
	Cached         map[string]bool `json:"cached,omitempty"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// HubRank is one airport's total inbound daily demand
type HubRank struct {
	Airport string  `json:"airport"`
	Total   float64 `json:"total"`
}

// AircraftRoute is one aircraft's time and cost on a route
type AircraftRoute struct {
	Aircraft      string  `json:"aircraft"`
	FlightMinutes float64 `json:"flight_minutes,omitempty"`
	FlightTime    string  `json:"flight_time,omitempty"`
	CostUSD       float64 `json:"cost_usd,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// RouteSummary represents the /api/v1/routes/{source}/{dest} response
type RouteSummary struct {
	Source           string          `json:"source"`
	Dest             string          `json:"dest"`
	DistanceNM       float64         `json:"distance_nm"`
	BearingDeg       float64         `json:"bearing_deg"`
	CruiseAltitudeFt int             `json:"cruise_altitude_ft"`
	International    bool            `json:"international"`
	Reachable        bool            `json:"reachable"`
	DailyDemand      int             `json:"daily_demand"`
	Aircraft         []AircraftRoute `json:"aircraft"`
}

// RecomputeResponse represents the /api/v1/recompute response
type RecomputeResponse struct {
	GeneratedAt string          `json:"generated_at"`
	Cached      map[string]bool `json:"cached"`
}

// Health calls the /api/v1/health endpoint
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Hubs calls /api/v1/hubs. A limit of zero returns every airport.
func (c *Client) Hubs(ctx context.Context, limit int) ([]HubRank, error) {
	path := "/api/v1/hubs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var ranks []HubRank
	if err := c.do(ctx, http.MethodGet, path, nil, &ranks); err != nil {
		return nil, err
	}
	return ranks, nil
}

// Route calls /api/v1/routes/{source}/{dest}
func (c *Client) Route(ctx context.Context, source, dest string) (*RouteSummary, error) {
	path := "/api/v1/routes/" + url.PathEscape(source) + "/" + url.PathEscape(dest)

	var summary RouteSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Recompute calls POST /api/v1/recompute
func (c *Client) Recompute(ctx context.Context, overwrite bool) (*RecomputeResponse, error) {
	body := map[string]bool{"overwrite": overwrite}

	var out RecomputeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/recompute", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}

// ABOUTME: Airport providers: embedded seed table and airportdb.io refresh
// ABOUTME: The airportdb client updates seed coordinates and names from the live API

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/markalston/route-economics/backend/data"
	"github.com/markalston/route-economics/backend/models"
)

// AirportProvider returns the candidate airport set in a stable order
type AirportProvider interface {
	Airports(ctx context.Context) ([]models.Airport, error)
}

// SeedProvider serves the embedded airport table
type SeedProvider struct{}

// Airports returns the seed airports
func (SeedProvider) Airports(ctx context.Context) ([]models.Airport, error) {
	return data.SeedAirports()
}

// AirportDBClient fetches airport records from airportdb.io. Population,
// timezone and jurisdiction stay from the base provider; the API has none of them.
type AirportDBClient struct {
	baseURL string
	token   string
	base    AirportProvider
	client  *http.Client
}

// NewAirportDBClient creates a client that refreshes the base provider's airports
func NewAirportDBClient(baseURL, token string, timeout time.Duration, base AirportProvider) *AirportDBClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AirportDBClient{
		baseURL: baseURL,
		token:   token,
		base:    base,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type airportDBRecord struct {
	Ident        string  `json:"ident"`
	Name         string  `json:"name"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
}

// Airports fetches every base airport by identifier and overlays name and coordinates
func (c *AirportDBClient) Airports(ctx context.Context) ([]models.Airport, error) {
	airports, err := c.base.Airports(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Airport, 0, len(airports))
	for _, a := range airports {
		rec, err := c.fetch(ctx, a.ICAO)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", a.ICAO, err)
		}

		a.Latitude = rec.LatitudeDeg
		a.Longitude = rec.LongitudeDeg
		if rec.Name != "" {
			a.Name = rec.Name
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	slog.Info("Fetched airports from airportdb", "count", len(out))
	return out, nil
}

func (c *AirportDBClient) fetch(ctx context.Context, icao string) (*airportDBRecord, error) {
	if err := ValidateAirportID(icao); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/airport/%s?apiToken=%s", c.baseURL, icao, url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("Fetching airport", "icao", icao)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("airportdb returned %d: %s", resp.StatusCode, sanitizeForLog(string(body)))
	}

	var rec airportDBRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to parse airport: %w", err)
	}
	return &rec, nil
}

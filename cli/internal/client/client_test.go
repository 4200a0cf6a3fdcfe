// ABOUTME: Tests for the route economics API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{
			Status:    "ok",
			AirportDB: "not_configured",
			Airports:  31,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.Airports != 31 {
		t.Errorf("expected 31 airports, got %d", resp.Airports)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("expected backend error message, got %v", err)
	}
}

func TestHealth_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	_, err := New(server.URL).Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestHealth_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).Health(ctx)
	if err == nil || err.Error() != "request timed out" {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestHubs_Limit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/hubs" {
			t.Errorf("expected path /api/v1/hubs, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("expected limit 2, got %q", got)
		}
		json.NewEncoder(w).Encode([]HubRank{{Airport: "KJFK", Total: 900}, {Airport: "KLAX", Total: 700}})
	}))
	defer server.Close()

	ranks, err := New(server.URL).Hubs(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranks) != 2 || ranks[0].Airport != "KJFK" {
		t.Errorf("unexpected ranks: %+v", ranks)
	}
}

func TestRoute_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/routes/KATL/KDEN" {
			t.Errorf("expected route path, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(RouteSummary{
			Source: "KATL", Dest: "KDEN", Reachable: true, DailyDemand: 120,
			Aircraft: []AircraftRoute{{Aircraft: "737-800", FlightMinutes: 231.4, CostUSD: 28000}},
		})
	}))
	defer server.Close()

	summary, err := New(server.URL).Route(context.Background(), "KATL", "KDEN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Reachable || summary.DailyDemand != 120 || len(summary.Aircraft) != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestRoute_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "airport EGLL: unknown airport", Code: 404})
	}))
	defer server.Close()

	_, err := New(server.URL).Route(context.Background(), "KATL", "EGLL")
	if err == nil || !strings.Contains(err.Error(), "unknown airport") {
		t.Errorf("expected unknown airport error, got %v", err)
	}
}

func TestRecompute_SendsOverwrite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]bool
		json.NewDecoder(r.Body).Decode(&body)
		if body["overwrite"] {
			t.Error("expected overwrite false")
		}
		json.NewEncoder(w).Encode(RecomputeResponse{GeneratedAt: "2024-01-15T12:00:00Z", Cached: map[string]bool{"distances": true}})
	}))
	defer server.Close()

	resp, err := New(server.URL).Recompute(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Cached["distances"] {
		t.Errorf("expected distances cached, got %v", resp.Cached)
	}
}

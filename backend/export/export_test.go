package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/markalston/route-economics/backend/cache"
	"github.com/markalston/route-economics/backend/models"
	"github.com/markalston/route-economics/backend/services"
)

func seedResult(t *testing.T) *services.Result {
	t.Helper()
	c := cache.New(time.Minute)
	t.Cleanup(c.Close)

	p, err := services.NewPipeline(services.SeedProvider{}, cache.NewMemo(c, false), services.DefaultPipelineOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return res
}

func TestGridCSV(t *testing.T) {
	g := models.NewGrid[float64]([]string{"KATL", "KDEN"})
	g.Set("KATL", "KATL", 0)
	g.Set("KATL", "KDEN", 1042.5)
	g.Set("KDEN", "KATL", 1042.5)

	var buf bytes.Buffer
	if err := GridCSV(&buf, g, FormatFloat); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != ",KATL,KDEN" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if strings.Join(records[1], ",") != "KATL,0,1042.5" {
		t.Errorf("Unexpected KATL row: %v", records[1])
	}
	// KDEN->KDEN was never set
	if strings.Join(records[2], ",") != "KDEN,1042.5," {
		t.Errorf("Unexpected KDEN row: %v", records[2])
	}
}

func TestGridCSV_FlightTimesAsHMS(t *testing.T) {
	g := models.NewGrid[float64]([]string{"KATL", "KDEN"})
	g.Set("KATL", "KDEN", 137.58)

	var buf bytes.Buffer
	if err := GridCSV(&buf, g, services.FormatHMS); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "KATL,,"+services.FormatHMS(137.58)) {
		t.Errorf("Expected HH:MM:SS cell, got %q", buf.String())
	}
}

func TestRoutesCSV(t *testing.T) {
	res := seedResult(t)

	var buf bytes.Buffer
	if err := RoutesCSV(&buf, res); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var rows []*RouteRow
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &rows); err != nil {
		t.Fatalf("Failed to parse routes CSV: %v", err)
	}

	served := 0
	for _, src := range res.Distances.Airports {
		for _, dst := range res.Distances.Airports {
			if d, _ := res.Distances.Get(src, dst); src != dst && d != models.Unreachable {
				served++
			}
		}
	}
	if len(rows) != served*len(res.Aircraft) {
		t.Errorf("Expected %d rows, got %d", served*len(res.Aircraft), len(rows))
	}

	for _, r := range rows {
		if r.Source == r.Dest {
			t.Errorf("Expected no self routes, got %s", r.Source)
		}
		if r.Source == "KATL" && r.Dest == "LFPG" && !r.International {
			t.Error("Expected KATL->LFPG to be international")
		}
	}
}

func TestHubRankingsJSON_KeepsRankOrder(t *testing.T) {
	ranks := []models.HubRank{
		{Airport: "KJFK", Total: 900},
		{Airport: "KATL", Total: 500},
		{Airport: "KBOS", Total: 20},
	}

	var buf bytes.Buffer
	if err := HubRankingsJSON(&buf, ranks); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	jfk := strings.Index(out, "KJFK")
	atl := strings.Index(out, "KATL")
	bos := strings.Index(out, "KBOS")
	if jfk < 0 || !(jfk < atl && atl < bos) {
		t.Errorf("Expected keys in rank order, got %s", out)
	}
}

func TestNetworkKML(t *testing.T) {
	res := seedResult(t)

	var buf bytes.Buffer
	if err := NetworkKML(&buf, res); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("Expected XML declaration, got %q", out[:20])
	}
	if got := strings.Count(out, "<Point>"); got != len(res.Airports) {
		t.Errorf("Expected %d airport points, got %d", len(res.Airports), got)
	}
	if !strings.Contains(out, "<name>KATL-KDEN</name>") {
		t.Error("Expected hub-to-hub route KATL-KDEN")
	}
	if strings.Contains(out, "<name>KBOS-KJFK</name>") {
		t.Error("Expected no routes from non-hub airports")
	}
}

func TestLineWidth(t *testing.T) {
	tests := []struct {
		demand int
		want   float64
	}{
		{0, 1}, {99, 1}, {100, 2}, {300, 4}, {5000, 6},
	}
	for _, tt := range tests {
		if got := lineWidth(tt.demand); got != tt.want {
			t.Errorf("lineWidth(%d): expected %v, got %v", tt.demand, tt.want, got)
		}
	}
}

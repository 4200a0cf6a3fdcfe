// ABOUTME: Route economics pipeline from airports to hub rankings
// ABOUTME: Each stage is a named artifact built once and reused through the memo store

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/markalston/route-economics/backend/cache"
	"github.com/markalston/route-economics/backend/geodesy"
	"github.com/markalston/route-economics/backend/models"
)

// Artifact keys in the memo store
const (
	KeyAirports    = "airports"
	KeyDistances   = "distances"
	KeyDemand      = "demand"
	KeyTaxiTimes   = "taxi-times"
	KeyAircraft    = "aircraft"
	KeyHubRankings = "hub-rankings"
)

// FlightTimesKey is the artifact key of one aircraft's flight-time table
func FlightTimesKey(aircraft string) string {
	return "flight-times/" + aircraft
}

// CostsKey is the artifact key of one aircraft's cost matrix
func CostsKey(aircraft string) string {
	return "costs/" + aircraft
}

// PipelineOptions is everything a run depends on besides its inputs
type PipelineOptions struct {
	Assumptions    models.Assumptions
	Aircraft       []models.AircraftSpec
	Hubs           models.HubSet
	Method         geodesy.Method
	SphericalScale float64
	Refuel         RefuelPolicy
}

// DefaultPipelineOptions returns the default assumptions, fleet and hubs
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Assumptions:    models.DefaultAssumptions(),
		Aircraft:       models.DefaultAircraft(),
		Hubs:           models.NewHubSet("KATL", "KDFW", "KDEN"),
		Method:         geodesy.MethodGeodesic,
		SphericalScale: 1,
		Refuel:         RefuelNever,
	}
}

// Result holds every artifact of one run. It is not mutated after Run returns.
type Result struct {
	GeneratedAt time.Time                          `json:"generated_at"`
	Fingerprint string                             `json:"fingerprint"`
	Method      geodesy.Method                     `json:"distance_method"`
	Airports    []models.Airport                   `json:"airports"`
	Distances   *models.Grid[float64]              `json:"distances"`
	Demand      *models.Grid[int]                  `json:"demand"`
	TaxiTimes   TaxiTimes                          `json:"taxi_times"`
	Aircraft    []models.AircraftSpec              `json:"aircraft"`
	FlightTimes map[string]*models.FlightTimeTable `json:"flight_times"`
	Costs       map[string]*models.Grid[float64]   `json:"costs"`
	HubRankings []models.HubRank                   `json:"hub_rankings"`
	Cached      map[string]bool                    `json:"cached"`

	legs map[string]map[string]models.Leg
}

// Pipeline runs the stages in dependency order
type Pipeline struct {
	provider AirportProvider
	memo     *cache.Memo
	opts     PipelineOptions
}

// NewPipeline creates a pipeline. It fails when the options are inconsistent.
func NewPipeline(provider AirportProvider, memo *cache.Memo, opts PipelineOptions) (*Pipeline, error) {
	if err := ValidateAssumptions(opts.Assumptions); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	if len(opts.Aircraft) == 0 {
		return nil, fmt.Errorf("at least one aircraft type is required")
	}
	for _, a := range opts.Aircraft {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	if _, err := geodesy.ParseMethod(string(opts.Method)); err != nil {
		return nil, err
	}
	if _, err := ParseRefuelPolicy(string(opts.Refuel)); err != nil {
		return nil, err
	}
	return &Pipeline{provider: provider, memo: memo, opts: opts}, nil
}

// Run builds or loads every artifact. Route-level failures are recorded in the
// flight-time tables; anything else aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	a := p.opts.Assumptions
	res := &Result{
		GeneratedAt: start.UTC(),
		Method:      p.opts.Method,
		FlightTimes: make(map[string]*models.FlightTimeTable),
		Costs:       make(map[string]*models.Grid[float64]),
		Cached:      make(map[string]bool),
	}

	airports, cached, err := cache.GetOrCompute(p.memo, KeyAirports, func() ([]models.Airport, error) {
		return p.provider.Airports(ctx)
	})
	if err != nil {
		return nil, err
	}
	res.Cached[KeyAirports] = cached
	res.Airports = MarkHubs(airports, p.opts.Hubs)

	res.Fingerprint, err = Fingerprint(p.opts, airports)
	if err != nil {
		return nil, err
	}
	memo := p.memo.Scope(res.Fingerprint)

	calc := geodesy.NewCalculator(p.opts.Method, p.opts.SphericalScale)
	builder := NewDistanceBuilder(calc, a.Demand.MinMiles, a.Altitudes)

	res.Distances, res.Cached[KeyDistances], err = cache.GetOrCompute(memo, KeyDistances, func() (*models.Grid[float64], error) {
		return builder.Matrix(res.Airports)
	})
	if err != nil {
		return nil, err
	}

	res.Demand, res.Cached[KeyDemand], err = cache.GetOrCompute(memo, KeyDemand, func() (*models.Grid[int], error) {
		return NewDemandCalculator(a.Demand).Matrix(Populations(res.Airports), res.Distances)
	})
	if err != nil {
		return nil, err
	}

	res.TaxiTimes, res.Cached[KeyTaxiTimes], err = cache.GetOrCompute(memo, KeyTaxiTimes, func() (TaxiTimes, error) {
		return BuildTaxiTimes(res.Airports, a.Taxi), nil
	})
	if err != nil {
		return nil, err
	}

	res.Aircraft, res.Cached[KeyAircraft], err = cache.GetOrCompute(memo, KeyAircraft, func() ([]models.AircraftSpec, error) {
		return p.opts.Aircraft, nil
	})
	if err != nil {
		return nil, err
	}

	legs, err := builder.Legs(res.Airports, res.Distances)
	if err != nil {
		return nil, err
	}
	res.legs = indexLegs(legs)

	ids := airportIDs(res.Airports)
	byID := indexAirports(res.Airports)
	estimator := NewFlightTimeEstimator(a.Timing, p.opts.Refuel)
	costs := NewCostCalculator(a.Jurisdictions)

	for _, craft := range res.Aircraft {
		key := FlightTimesKey(craft.Name)
		table, cached, err := cache.GetOrCompute(memo, key, func() (*models.FlightTimeTable, error) {
			return estimator.Matrix(ids, legs, craft, res.TaxiTimes), nil
		})
		if err != nil {
			return nil, err
		}
		res.FlightTimes[craft.Name] = table
		res.Cached[key] = cached

		key = CostsKey(craft.Name)
		grid, cached, err := cache.GetOrCompute(memo, key, func() (*models.Grid[float64], error) {
			return costs.Matrix(table, craft, byID)
		})
		if err != nil {
			return nil, err
		}
		res.Costs[craft.Name] = grid
		res.Cached[key] = cached

		if n := len(table.Failures); n > 0 {
			slog.Warn("Routes without estimates", "aircraft", craft.Name, "count", n)
		}
	}

	res.HubRankings, res.Cached[KeyHubRankings], err = cache.GetOrCompute(memo, KeyHubRankings, func() ([]models.HubRank, error) {
		return RankHubs(res.Demand), nil
	})
	if err != nil {
		return nil, err
	}

	if err := memo.Commit(); err != nil {
		return nil, err
	}

	slog.Info("Pipeline complete",
		"fingerprint", res.Fingerprint,
		"airports", len(res.Airports),
		"aircraft", len(res.Aircraft),
		"method", p.opts.Method,
		"duration", time.Since(start))
	return res, nil
}

// Fingerprint identifies the inputs of a run. Derived artifacts are stored
// under it, so runs with different settings or airports never share them.
func Fingerprint(opts PipelineOptions, airports []models.Airport) (string, error) {
	data, err := json.Marshal(struct {
		Options  PipelineOptions  `json:"options"`
		Airports []models.Airport `json:"airports"`
	}{opts, MarkHubs(airports, nil)})
	if err != nil {
		return "", fmt.Errorf("fingerprinting run inputs: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}

// MarkHubs returns a copy of airports with IsHub set from the hub set
func MarkHubs(airports []models.Airport, hubs models.HubSet) []models.Airport {
	out := make([]models.Airport, len(airports))
	for i, a := range airports {
		a.IsHub = hubs.Contains(a.ICAO)
		if a.IsHub {
			slog.Debug("Marked airport as hub", "icao", a.ICAO)
		}
		out[i] = a
	}
	return out
}

func indexAirports(airports []models.Airport) map[string]models.Airport {
	out := make(map[string]models.Airport, len(airports))
	for _, a := range airports {
		out[a.ICAO] = a
	}
	return out
}

func indexLegs(legs []models.Leg) map[string]map[string]models.Leg {
	out := make(map[string]map[string]models.Leg)
	for _, l := range legs {
		if out[l.Source] == nil {
			out[l.Source] = make(map[string]models.Leg)
		}
		out[l.Source][l.Dest] = l
	}
	return out
}

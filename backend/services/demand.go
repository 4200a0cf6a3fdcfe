// ABOUTME: Passenger demand model driven by metro populations
// ABOUTME: Allocates each airport's addressable flyers across reachable destinations

package services

import (
	"log/slog"
	"math"

	"github.com/markalston/route-economics/backend/models"
)

// DemandCalculator estimates daily passengers per directed airport pair
type DemandCalculator struct {
	params models.DemandParams
}

// NewDemandCalculator creates a demand calculator with the given assumptions
func NewDemandCalculator(params models.DemandParams) *DemandCalculator {
	return &DemandCalculator{params: params}
}

// reachable reports whether a distance-matrix cell counts as a served destination
func reachable(distanceNM, minMiles float64) bool {
	return distanceNM != models.Unreachable && distanceNM >= minMiles
}

// ReachablePopulation sums the population of every destination at least minMiles
// from source. Self and sentinel cells are skipped.
func ReachablePopulation(source string, distances *models.Grid[float64], populations map[string]float64, minMiles float64) (float64, error) {
	var total float64
	for _, dest := range distances.Airports {
		if dest == source {
			continue
		}
		d, ok := distances.Get(source, dest)
		if !ok || !reachable(d, minMiles) {
			continue
		}
		total += populations[dest]
	}

	if total == 0 {
		return 0, &models.RouteError{Source: source, Err: models.ErrNoReachableDestinations}
	}
	return total, nil
}

// Matrix builds the demand matrix. Every cell of the grid is set; self and
// unreachable pairs are zero. A source with nothing reachable aborts the build.
func (c *DemandCalculator) Matrix(populations map[string]float64, distances *models.Grid[float64]) (*models.Grid[int], error) {
	for _, id := range distances.Airports {
		if _, ok := populations[id]; !ok {
			return nil, &models.RouteError{Source: id, Err: models.ErrUnknownAirport}
		}
	}

	grid := models.NewGrid[int](distances.Airports)

	for _, source := range distances.Airports {
		pop := populations[source]
		for _, dest := range distances.Airports {
			grid.Set(source, dest, 0)
		}

		reachablePop, err := ReachablePopulation(source, distances, populations, c.params.MinMiles)
		if err != nil {
			return nil, err
		}

		addressable := c.AddressableFlyers(pop)
		slog.Debug("Demand source", "source", source, "reachable_population", reachablePop, "addressable_flyers", addressable)

		for _, dest := range distances.Airports {
			if dest == source {
				continue
			}
			d, _ := distances.Get(source, dest)
			if !reachable(d, c.params.MinMiles) {
				continue
			}
			grid.Set(source, dest, int(math.Round(addressable*populations[dest]/reachablePop)))
		}
	}

	return grid, nil
}

// AddressableFlyers is the share of a metro population flying daily with this airline
func (c *DemandCalculator) AddressableFlyers(population float64) float64 {
	return population * c.params.PercentOfFlyers * c.params.MarketShare
}

// Populations indexes airport populations by identifier
func Populations(airports []models.Airport) map[string]float64 {
	out := make(map[string]float64, len(airports))
	for _, a := range airports {
		out[a.ICAO] = a.Population
	}
	return out
}

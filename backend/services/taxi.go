// ABOUTME: Taxi time model from metro population and hub status
// ABOUTME: Hubs get a congestion step per population increment; spokes scale linearly

package services

import (
	"math"

	"github.com/markalston/route-economics/backend/models"
)

// TaxiTimes maps an airport identifier to its taxi time in minutes
type TaxiTimes map[string]float64

// TaxiTime returns the gate-to-runway minutes for one airport
func TaxiTime(population float64, isHub bool, p models.TaxiParams) float64 {
	if !isHub {
		return math.Min(p.SpokeMaxMinutes, population*p.SpokeMinutesPerPerson)
	}
	if population <= p.HubPopulationFloor {
		return p.HubBaseMinutes
	}
	extra := math.Ceil((population - p.HubPopulationFloor) / p.HubPopulationPerStep)
	return math.Min(p.HubMaxMinutes, p.HubBaseMinutes+extra)
}

// BuildTaxiTimes computes taxi times for every airport. Hub status comes from the
// airport records, which the pipeline marks from an explicit hub set.
func BuildTaxiTimes(airports []models.Airport, p models.TaxiParams) TaxiTimes {
	out := make(TaxiTimes, len(airports))
	for _, a := range airports {
		out[a.ICAO] = TaxiTime(a.Population, a.IsHub, p)
	}
	return out
}

// ABOUTME: Operating cost estimator for a flight: fuel plus airport fees
// ABOUTME: Fuel is bought at the source; takeoff fee at the source, landing fee at the destination

package services

import (
	"github.com/markalston/route-economics/backend/models"
)

// CostCalculator converts flight times into operating cost in USD
type CostCalculator struct {
	jurisdictions models.JurisdictionTable
}

// NewCostCalculator creates a cost calculator over a jurisdiction table
func NewCostCalculator(jurisdictions models.JurisdictionTable) *CostCalculator {
	return &CostCalculator{jurisdictions: jurisdictions}
}

// FlightCost returns the cost of one flight between two distinct airports,
// rounded to cents. Fees are charged regardless of duration.
func (c *CostCalculator) FlightCost(minutes float64, aircraft models.AircraftSpec, src, dst models.Jurisdiction) float64 {
	gallons := minutes / 60 * aircraft.FuelBurnGalHr
	fuel := gallons * src.FuelPricePerGal
	return models.Round(fuel+src.TakeoffFee+dst.LandingFee, 2)
}

// Matrix derives the cost grid strictly from a flight-time table. Pairs absent
// from the table are absent from the result.
func (c *CostCalculator) Matrix(table *models.FlightTimeTable, aircraft models.AircraftSpec, airports map[string]models.Airport) (*models.Grid[float64], error) {
	grid := models.NewGrid[float64](table.Minutes.Airports)

	for _, src := range table.Minutes.Airports {
		srcJur, err := c.jurisdictionOf(src, airports)
		if err != nil {
			return nil, err
		}
		for _, dst := range table.Minutes.Airports {
			minutes, ok := table.Minutes.Get(src, dst)
			if !ok {
				continue
			}
			if src == dst {
				grid.Set(src, dst, 0)
				continue
			}
			dstJur, err := c.jurisdictionOf(dst, airports)
			if err != nil {
				return nil, err
			}
			grid.Set(src, dst, c.FlightCost(minutes, aircraft, srcJur, dstJur))
		}
	}

	return grid, nil
}

func (c *CostCalculator) jurisdictionOf(icao string, airports map[string]models.Airport) (models.Jurisdiction, error) {
	a, ok := airports[icao]
	if !ok {
		return models.Jurisdiction{}, &models.RouteError{Source: icao, Err: models.ErrUnknownAirport}
	}
	j, err := c.jurisdictions.Lookup(a.Jurisdiction)
	if err != nil {
		return models.Jurisdiction{}, &models.RouteError{Source: icao, Err: err}
	}
	return j, nil
}

// ABOUTME: Distance matrix and route leg construction for the airport set
// ABOUTME: Pairs closer than the minimum reachable distance get the unreachable sentinel

package services

import (
	"github.com/markalston/route-economics/backend/geodesy"
	"github.com/markalston/route-economics/backend/models"
)

// DistanceBuilder turns airport coordinates into distances and legs with one
// geodesy method for the whole run
type DistanceBuilder struct {
	calc     *geodesy.Calculator
	minMiles float64
	policy   models.AltitudePolicy
}

// NewDistanceBuilder creates a distance builder
func NewDistanceBuilder(calc *geodesy.Calculator, minMiles float64, policy models.AltitudePolicy) *DistanceBuilder {
	return &DistanceBuilder{calc: calc, minMiles: minMiles, policy: policy}
}

// Matrix computes the distance between every ordered airport pair. Self is 0,
// served pairs are rounded to five decimals and the rest are models.Unreachable.
func (b *DistanceBuilder) Matrix(airports []models.Airport) (*models.Grid[float64], error) {
	grid := models.NewGrid[float64](airportIDs(airports))

	for _, src := range airports {
		for _, dst := range airports {
			if src.ICAO == dst.ICAO {
				grid.Set(src.ICAO, dst.ICAO, 0)
				continue
			}
			nm, _, err := b.calc.DistanceAndBearing(src.Coordinate(), dst.Coordinate())
			if err != nil {
				return nil, &models.RouteError{Source: src.ICAO, Dest: dst.ICAO, Err: err}
			}
			if nm >= b.minMiles {
				grid.Set(src.ICAO, dst.ICAO, models.Round(nm, 5))
			} else {
				grid.Set(src.ICAO, dst.ICAO, models.Unreachable)
			}
		}
	}

	return grid, nil
}

// Legs returns the served legs in airport order: self legs and every pair the
// distance matrix marks as reachable. Distance and bearing are recomputed at full
// precision with the same method that built the matrix.
func (b *DistanceBuilder) Legs(airports []models.Airport, distances *models.Grid[float64]) ([]models.Leg, error) {
	var legs []models.Leg

	for _, src := range airports {
		for _, dst := range airports {
			if src.ICAO == dst.ICAO {
				legs = append(legs, models.Leg{Source: src.ICAO, Dest: dst.ICAO})
				continue
			}
			d, ok := distances.Get(src.ICAO, dst.ICAO)
			if !ok || !reachable(d, b.minMiles) {
				continue
			}

			nm, bearing, err := b.calc.DistanceAndBearing(src.Coordinate(), dst.Coordinate())
			if err != nil {
				return nil, &models.RouteError{Source: src.ICAO, Dest: dst.ICAO, Err: err}
			}

			international := src.Jurisdiction != dst.Jurisdiction
			legs = append(legs, models.Leg{
				Source:           src.ICAO,
				Dest:             dst.ICAO,
				DistanceNM:       nm,
				BearingDeg:       bearing,
				CruiseAltitudeFt: b.policy.Select(d, international),
				International:    international,
			})
		}
	}

	return legs, nil
}

func airportIDs(airports []models.Airport) []string {
	ids := make([]string, len(airports))
	for i, a := range airports {
		ids[i] = a.ICAO
	}
	return ids
}

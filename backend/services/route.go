// ABOUTME: Per-route summary across every pipeline artifact
// ABOUTME: Joins distance, demand, and each aircraft's time and cost for one directed pair

package services

import (
	"fmt"

	"github.com/markalston/route-economics/backend/models"
)

// Route summarizes one directed airport pair. Unserved pairs are reported with
// Reachable false and no aircraft figures.
func (r *Result) Route(source, dest string) (models.RouteSummary, error) {
	if !r.hasAirport(source) {
		return models.RouteSummary{}, &models.RouteError{Source: source, Err: models.ErrUnknownAirport}
	}
	if !r.hasAirport(dest) {
		return models.RouteSummary{}, &models.RouteError{Source: dest, Err: models.ErrUnknownAirport}
	}

	summary := models.RouteSummary{
		Leg:      models.Leg{Source: source, Dest: dest, DistanceNM: models.Unreachable},
		Aircraft: []models.AircraftRoute{},
	}
	if d, ok := r.Distances.Get(source, dest); ok {
		summary.DistanceNM = d
	}
	summary.DailyDemand, _ = r.Demand.Get(source, dest)

	leg, ok := r.legs[source][dest]
	if !ok {
		return summary, nil
	}
	summary.Leg = leg
	summary.DistanceNM = models.Round(leg.DistanceNM, 5)
	summary.BearingDeg = models.Round(leg.BearingDeg, 2)
	summary.Reachable = true

	for _, craft := range r.Aircraft {
		summary.Aircraft = append(summary.Aircraft, r.aircraftRoute(craft.Name, source, dest))
	}
	return summary, nil
}

func (r *Result) aircraftRoute(aircraft, source, dest string) models.AircraftRoute {
	out := models.AircraftRoute{Aircraft: aircraft}

	table, ok := r.FlightTimes[aircraft]
	if !ok {
		out.Error = fmt.Sprintf("no flight times for %s", aircraft)
		return out
	}
	minutes, ok := table.Minutes.Get(source, dest)
	if !ok {
		out.Error = "not estimated"
		for _, f := range table.Failures {
			if f.Source == source && f.Dest == dest {
				out.Error = f.Reason
				break
			}
		}
		return out
	}

	out.FlightMinutes = minutes
	out.FlightTime = FormatHMS(minutes)
	if costs, ok := r.Costs[aircraft]; ok {
		out.CostUSD, _ = costs.Get(source, dest)
	}
	return out
}

func (r *Result) hasAirport(icao string) bool {
	_, ok := r.Distances.Values[icao]
	return ok
}

// Airport returns one airport of the run
func (r *Result) Airport(icao string) (models.Airport, bool) {
	for _, a := range r.Airports {
		if a.ICAO == icao {
			return a, true
		}
	}
	return models.Airport{}, false
}

// ABOUTME: Gate-to-gate flight time estimator per route and aircraft type
// ABOUTME: Sums ground, climb, acceleration, cruise and descent phases, then applies a westbound bias

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/markalston/route-economics/backend/geodesy"
	"github.com/markalston/route-economics/backend/models"
)

// dueWest is the heading at which the westbound bias is strongest
const dueWest = 270.0

// RefuelPolicy decides whether a turnaround includes refuelling
type RefuelPolicy string

const (
	// RefuelNever never adds refuel time
	RefuelNever RefuelPolicy = "never"
	// RefuelEndurance refuels when the airborne burn would exceed fuel capacity
	RefuelEndurance RefuelPolicy = "endurance"
)

// ParseRefuelPolicy validates a refuel policy name
func ParseRefuelPolicy(s string) (RefuelPolicy, error) {
	switch RefuelPolicy(s) {
	case RefuelNever, RefuelEndurance:
		return RefuelPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown refuel policy %q (want %q or %q)", s, RefuelNever, RefuelEndurance)
	}
}

// FlightTimeEstimator computes flight durations from legs and aircraft specs
type FlightTimeEstimator struct {
	timing models.TimingParams
	phases *PhaseModel
	refuel RefuelPolicy
}

// NewFlightTimeEstimator creates a flight time estimator
func NewFlightTimeEstimator(timing models.TimingParams, refuel RefuelPolicy) *FlightTimeEstimator {
	if refuel == "" {
		refuel = RefuelNever
	}
	return &FlightTimeEstimator{
		timing: timing,
		phases: NewPhaseModel(timing),
		refuel: refuel,
	}
}

// Estimate returns gate-to-gate minutes for one leg, rounded to two decimals.
// Self legs take zero minutes.
func (e *FlightTimeEstimator) Estimate(leg models.Leg, aircraft models.AircraftSpec, taxi TaxiTimes) (float64, error) {
	if leg.IsSelf() {
		return 0, nil
	}

	taxiDest, ok := taxi[leg.Dest]
	if !ok {
		return 0, fmt.Errorf("%w for %s", models.ErrMissingTaxiTime, leg.Dest)
	}

	climb, err := e.phases.Climb(leg.CruiseAltitudeFt)
	if err != nil {
		return 0, err
	}
	descent, err := e.phases.Descent(leg.CruiseAltitudeFt)
	if err != nil {
		return 0, err
	}
	accel := e.phases.Acceleration(aircraft)

	remaining := leg.DistanceNM - climb.DistanceNM - accel.DistanceNM - descent.DistanceNM
	if remaining < 0 {
		return 0, fmt.Errorf("%w: %.2f nm leg needs %.2f nm", models.ErrNegativeRemainingDistance,
			leg.DistanceNM, climb.DistanceNM+accel.DistanceNM+descent.DistanceNM)
	}
	cruise := remaining / (aircraft.MaxSpeedKt * e.timing.CruiseSpeedFactor) * 60

	airborne := climb.Minutes + accel.Minutes + cruise + descent.Minutes

	total := e.timing.TurnaroundMinutes
	if e.mustRefuel(airborne, aircraft) {
		total += e.timing.RefuelMinutes
	}
	total += e.timing.LiftoffMinutes + e.timing.TimeTo10000FtMinutes
	total += airborne
	total += e.timing.StopMinutes + taxiDest

	total *= 1 + e.timing.WestboundMultiplier*WestPercentage(leg.BearingDeg)

	return models.Round(total, 2), nil
}

func (e *FlightTimeEstimator) mustRefuel(airborneMinutes float64, aircraft models.AircraftSpec) bool {
	if e.refuel != RefuelEndurance {
		return false
	}
	return airborneMinutes/60*aircraft.FuelBurnGalHr > aircraft.FuelCapacityGal
}

// WestPercentage is 1 for a due-west heading, falling linearly to 0 at north or
// south and staying 0 on the eastbound side.
func WestPercentage(bearingDeg float64) float64 {
	return math.Max(0, 1-geodesy.AngularDistance(bearingDeg, dueWest)/90)
}

// Matrix estimates every served leg for one aircraft. Legs that fail are recorded
// as failures and left out of the grid.
func (e *FlightTimeEstimator) Matrix(airports []string, legs []models.Leg, aircraft models.AircraftSpec, taxi TaxiTimes) *models.FlightTimeTable {
	table := &models.FlightTimeTable{
		Aircraft: aircraft.Name,
		Minutes:  models.NewGrid[float64](airports),
		Failures: []models.RouteFailure{},
	}

	for _, leg := range legs {
		minutes, err := e.Estimate(leg, aircraft, taxi)
		if err != nil {
			routeErr := &models.RouteError{Source: leg.Source, Dest: leg.Dest, Aircraft: aircraft.Name, Err: err}
			slog.Warn("Route estimate failed", "source", leg.Source, "dest", leg.Dest, "aircraft", aircraft.Name, "error", err)
			table.Failures = append(table.Failures, models.NewRouteFailure(routeErr))
			continue
		}
		table.Minutes.Set(leg.Source, leg.Dest, minutes)
	}

	return table
}

// FormatHMS renders minutes as HH:MM:SS, rounding to the nearest second
func FormatHMS(minutes float64) string {
	seconds := int64(math.Round(minutes * 60))
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, seconds%3600/60, seconds%60)
}

// ABOUTME: Input validation for airport identifiers and run assumptions
// ABOUTME: Rejects malformed path parameters before they reach lookups or upstream URLs

package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/markalston/route-economics/backend/models"
)

// airportIDPattern matches ICAO location indicators (four letters or digits)
var airportIDPattern = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidateAirportID validates that an airport identifier has ICAO format.
// This prevents URL path injection when the identifier is sent upstream.
func ValidateAirportID(id string) error {
	if !airportIDPattern.MatchString(id) {
		return fmt.Errorf("invalid airport identifier: %s", sanitizeForLog(id))
	}
	return nil
}

// ValidateAssumptions checks every ratio, threshold and table in the assumptions
func ValidateAssumptions(a models.Assumptions) error {
	d := a.Demand
	if !(d.PercentOfFlyers > 0 && d.PercentOfFlyers <= 1) {
		return fmt.Errorf("percent of flyers must be in (0, 1], got %v", d.PercentOfFlyers)
	}
	if !(d.MarketShare > 0 && d.MarketShare <= 1) {
		return fmt.Errorf("market share must be in (0, 1], got %v", d.MarketShare)
	}
	if d.MinMiles < 0 {
		return fmt.Errorf("minimum reachable distance cannot be negative, got %v", d.MinMiles)
	}

	tm := a.Timing
	if !(tm.CruiseSpeedFactor > 0 && tm.CruiseSpeedFactor <= 1) {
		return fmt.Errorf("cruise speed factor must be in (0, 1], got %v", tm.CruiseSpeedFactor)
	}
	if tm.WestboundMultiplier < 0 {
		return fmt.Errorf("westbound multiplier cannot be negative, got %v", tm.WestboundMultiplier)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"turnaround minutes", tm.TurnaroundMinutes},
		{"refuel minutes", tm.RefuelMinutes},
		{"liftoff minutes", tm.LiftoffMinutes},
		{"stop minutes", tm.StopMinutes},
	} {
		if f.value < 0 {
			return fmt.Errorf("%s cannot be negative, got %v", f.name, f.value)
		}
	}
	if tm.AscendAngleDeg <= 0 || tm.AscendAngleDeg >= 90 {
		return fmt.Errorf("ascend angle must be in (0, 90), got %v", tm.AscendAngleDeg)
	}
	if tm.AscentRateNMPerMin <= 0 || tm.AccelRateKtPerMin <= 0 {
		return fmt.Errorf("ascent and acceleration rates must be positive")
	}

	if err := a.Altitudes.Validate(); err != nil {
		return err
	}
	if len(a.Jurisdictions) == 0 {
		return fmt.Errorf("at least one jurisdiction is required")
	}
	return nil
}

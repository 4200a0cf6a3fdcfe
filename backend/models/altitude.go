// ABOUTME: Cruise flight levels and the distance-based altitude selection policy
// ABOUTME: The policy is a table of distance bands so new bands are data, not branches

package models

import "fmt"

// Enumerated cruise flight levels (feet)
const (
	FlightLevel200 = 20000
	FlightLevel250 = 25000
	FlightLevel300 = 30000
	FlightLevel350 = 35000
	FlightLevel380 = 38000
)

// FlightLevels lists every valid cruise altitude, lowest first
var FlightLevels = []int{FlightLevel200, FlightLevel250, FlightLevel300, FlightLevel350, FlightLevel380}

// ValidateAltitude fails with ErrInvalidAltitude unless alt is an enumerated flight level
func ValidateAltitude(alt int) error {
	for _, fl := range FlightLevels {
		if alt == fl {
			return nil
		}
	}
	return fmt.Errorf("%w: %d ft is not one of %v", ErrInvalidAltitude, alt, FlightLevels)
}

// AltitudeBand assigns an altitude to domestic legs with MinNM <= distance < MaxNM.
// MaxNM of zero means unbounded.
type AltitudeBand struct {
	MinNM      float64 `json:"min_nm"`
	MaxNM      float64 `json:"max_nm"`
	AltitudeFt int     `json:"altitude_ft"`
}

func (b AltitudeBand) contains(d float64) bool {
	return d >= b.MinNM && (b.MaxNM == 0 || d < b.MaxNM)
}

// AltitudePolicy picks a cruise altitude from leg distance and jurisdiction
type AltitudePolicy struct {
	InternationalFt int            `json:"international_ft"`
	Bands           []AltitudeBand `json:"bands"`
	DefaultFt       int            `json:"default_ft"`
}

// DefaultAltitudePolicy returns the project's policy: international legs fly highest,
// long domestic legs at FL350, 200-350 nm legs at FL250, everything else at FL200.
func DefaultAltitudePolicy() AltitudePolicy {
	return AltitudePolicy{
		InternationalFt: FlightLevel380,
		Bands: []AltitudeBand{
			{MinNM: 1500, AltitudeFt: FlightLevel350},
			{MinNM: 200, MaxNM: 350, AltitudeFt: FlightLevel250},
		},
		DefaultFt: FlightLevel200,
	}
}

// Select returns the cruise altitude for a leg. Bands are checked in order; distances
// outside every band, including the unreachable sentinel, get the default level.
func (p AltitudePolicy) Select(distanceNM float64, international bool) int {
	if international {
		return p.InternationalFt
	}
	for _, b := range p.Bands {
		if b.contains(distanceNM) {
			return b.AltitudeFt
		}
	}
	return p.DefaultFt
}

// Validate checks that every altitude in the policy is an enumerated flight level
func (p AltitudePolicy) Validate() error {
	if err := ValidateAltitude(p.InternationalFt); err != nil {
		return err
	}
	if err := ValidateAltitude(p.DefaultFt); err != nil {
		return err
	}
	for _, b := range p.Bands {
		if err := ValidateAltitude(b.AltitudeFt); err != nil {
			return err
		}
	}
	return nil
}

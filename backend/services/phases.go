// ABOUTME: Climb and descent phase model between 10,000 ft and cruise altitude
// ABOUTME: Returns horizontal distance covered and minutes spent in each phase

package services

import (
	"math"

	"github.com/markalston/route-economics/backend/models"
)

// PhaseModel computes climb and descent phases from timing assumptions
type PhaseModel struct {
	timing models.TimingParams
}

// NewPhaseModel creates a phase model
func NewPhaseModel(timing models.TimingParams) *PhaseModel {
	return &PhaseModel{timing: timing}
}

// Climb returns the horizontal distance and time to climb from 10,000 ft to altitudeFt.
// The first AccelPhaseNM are flown in AccelPhaseMinutes while accelerating to climb speed.
func (m *PhaseModel) Climb(altitudeFt int) (models.Phase, error) {
	if err := models.ValidateAltitude(altitudeFt); err != nil {
		return models.Phase{}, err
	}

	height := float64(altitudeFt - models.TransitionAltitudeFt)
	slantFt := height / math.Sin(m.timing.AscendAngleDeg*math.Pi/180)
	distance := slantFt / models.FeetPerNM

	return models.Phase{
		DistanceNM: distance,
		Minutes:    m.timing.AccelPhaseMinutes + (distance-m.timing.AccelPhaseNM)/m.timing.AscentRateNMPerMin,
	}, nil
}

// Descent returns the horizontal distance and time to descend from altitudeFt to
// 10,000 ft, flown at the climb rate.
func (m *PhaseModel) Descent(altitudeFt int) (models.Phase, error) {
	if err := models.ValidateAltitude(altitudeFt); err != nil {
		return models.Phase{}, err
	}

	distance := float64(altitudeFt-models.TransitionAltitudeFt) / 1000 * m.timing.DescentNMPer1000Ft

	return models.Phase{
		DistanceNM: distance,
		Minutes:    distance / m.timing.AscentRateNMPerMin,
	}, nil
}

// Acceleration returns the distance and time to accelerate from cruise-entry speed
// to the aircraft's maximum speed, at the mean of the two speeds.
func (m *PhaseModel) Acceleration(aircraft models.AircraftSpec) models.Phase {
	minutes := (aircraft.MaxSpeedKt - m.timing.CruiseEntrySpeedKt) / m.timing.AccelRateKtPerMin
	meanSpeed := (m.timing.CruiseEntrySpeedKt + aircraft.MaxSpeedKt) / 2
	return models.Phase{
		DistanceNM: minutes * meanSpeed / 60,
		Minutes:    minutes,
	}
}

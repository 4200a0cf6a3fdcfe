// ABOUTME: Data models for airports, aircraft, and API responses
// ABOUTME: JSON-serializable structures shared by the pipeline, cache, and HTTP API

package models

import (
	"fmt"
	"math"
)

// Coordinate is a latitude/longitude pair in degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude_deg"`
	Longitude float64 `json:"longitude_deg"`
}

// Validate checks that the coordinate lies within the valid lat/lon range
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// Airport represents a candidate airport with its metro-area population
type Airport struct {
	ICAO         string  `json:"icao" csv:"icao"`
	Name         string  `json:"name" csv:"name"`
	Latitude     float64 `json:"latitude_deg" csv:"latitude_deg"`
	Longitude    float64 `json:"longitude_deg" csv:"longitude_deg"`
	Population   float64 `json:"population" csv:"population"`
	Timezone     string  `json:"timezone" csv:"timezone"`
	Jurisdiction string  `json:"jurisdiction" csv:"jurisdiction"`
	IsHub        bool    `json:"is_hub" csv:"-"`
}

// Coordinate returns the airport position
func (a Airport) Coordinate() Coordinate {
	return Coordinate{Latitude: a.Latitude, Longitude: a.Longitude}
}

// Validate checks the airport invariants
func (a Airport) Validate() error {
	if a.ICAO == "" {
		return fmt.Errorf("airport identifier cannot be empty")
	}
	if err := a.Coordinate().Validate(); err != nil {
		return fmt.Errorf("airport %s: %w", a.ICAO, err)
	}
	if !(a.Population > 0) {
		return fmt.Errorf("airport %s: population must be positive, got %v", a.ICAO, a.Population)
	}
	return nil
}

// AircraftSpec is the performance envelope of one aircraft type
type AircraftSpec struct {
	Name            string  `json:"name"`
	FuelCapacityGal float64 `json:"fuel_capacity_gal"`
	MaxSpeedKt      float64 `json:"max_speed_kt"`
	FuelBurnGalHr   float64 `json:"fuel_burn_rate_gal_hr"`
	MaxSeats        int     `json:"max_seats"`
}

// Validate checks that every performance figure is positive
func (a AircraftSpec) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("aircraft name cannot be empty")
	}
	if a.FuelCapacityGal <= 0 || a.MaxSpeedKt <= 0 || a.FuelBurnGalHr <= 0 || a.MaxSeats <= 0 {
		return fmt.Errorf("aircraft %s: capacity, speed, burn rate and seats must be positive", a.Name)
	}
	return nil
}

// DefaultAircraft returns the aircraft types evaluated by the course project
func DefaultAircraft() []AircraftSpec {
	return []AircraftSpec{
		{Name: "737-600", FuelCapacityGal: 6875, MaxSpeedKt: 485, FuelBurnGalHr: 850, MaxSeats: 149},
		{Name: "737-800", FuelCapacityGal: 6875, MaxSpeedKt: 485, FuelBurnGalHr: 1050, MaxSeats: 189},
		{Name: "A220-100", FuelCapacityGal: 5700, MaxSpeedKt: 470, FuelBurnGalHr: 700, MaxSeats: 135},
		{Name: "A220-300", FuelCapacityGal: 5700, MaxSpeedKt: 470, FuelBurnGalHr: 750, MaxSeats: 160},
	}
}

// HubSet is an explicit hub designation threaded through the pipeline
type HubSet map[string]bool

// NewHubSet builds a hub set from airport identifiers
func NewHubSet(ids ...string) HubSet {
	hs := make(HubSet, len(ids))
	for _, id := range ids {
		hs[id] = true
	}
	return hs
}

// Contains reports whether the airport is designated as a hub
func (h HubSet) Contains(icao string) bool {
	return h[icao]
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

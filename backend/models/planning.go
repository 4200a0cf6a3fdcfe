// ABOUTME: Data models for route planning results
// ABOUTME: Legs, flight-time tables, hub rankings, and per-route API summaries

package models

// Leg is the geometry of one directed airport pair
type Leg struct {
	Source           string  `json:"source"`
	Dest             string  `json:"dest"`
	DistanceNM       float64 `json:"distance_nm"`
	BearingDeg       float64 `json:"bearing_deg"`
	CruiseAltitudeFt int     `json:"cruise_altitude_ft"`
	International    bool    `json:"international"`
}

// IsSelf reports whether the leg starts and ends at the same airport
func (l Leg) IsSelf() bool {
	return l.Source == l.Dest
}

// Phase is the horizontal distance and time consumed by a climb or descent
type Phase struct {
	DistanceNM float64 `json:"distance_nm"`
	Minutes    float64 `json:"minutes"`
}

// FlightTimeTable holds gate-to-gate minutes for one aircraft type.
// Unreachable pairs are absent; routes that could not be computed are in Failures.
type FlightTimeTable struct {
	Aircraft string         `json:"aircraft"`
	Minutes  *Grid[float64] `json:"minutes"`
	Failures []RouteFailure `json:"failures"`
}

// HubRank is one airport's aggregate inbound flow
type HubRank struct {
	Airport string  `json:"airport"`
	Total   float64 `json:"total"`
}

// AircraftRoute is the time and cost of one route for one aircraft type
type AircraftRoute struct {
	Aircraft      string  `json:"aircraft"`
	FlightMinutes float64 `json:"flight_minutes,omitempty"`
	FlightTime    string  `json:"flight_time,omitempty"`
	CostUSD       float64 `json:"cost_usd,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// RouteSummary is the full picture of one directed airport pair
type RouteSummary struct {
	Leg
	Reachable   bool            `json:"reachable"`
	DailyDemand int             `json:"daily_demand"`
	Aircraft    []AircraftRoute `json:"aircraft"`
}

// LocalTime is the wall-clock time at an airport
type LocalTime struct {
	Airport   string `json:"airport"`
	Timezone  string `json:"timezone"`
	LocalTime string `json:"local_time"`
	UTCOffset string `json:"utc_offset"`
}

// ABOUTME: Economic and timing assumptions feeding the pipeline
// ABOUTME: Defaults mirror the course project's constants; config overrides them from env

package models

// FeetPerNM is the number of feet in one nautical mile
const FeetPerNM = 6076.12

// MetersPerNM is the number of meters in one nautical mile
const MetersPerNM = 1852.0

// TransitionAltitudeFt is where the climb phase model starts and the descent phase ends
const TransitionAltitudeFt = 10000

// DemandParams drives the passenger demand model
type DemandParams struct {
	PercentOfFlyers float64 `json:"percent_of_flyers"` // share of metro population flying daily
	MarketShare     float64 `json:"market_share"`      // share of flyers captured by the airline
	MinMiles        float64 `json:"min_miles"`         // minimum reachable distance (nm)
}

// TimingParams holds the fixed ground and flight-phase constants (minutes, knots, nm)
type TimingParams struct {
	TurnaroundMinutes    float64 `json:"turnaround_minutes"`
	RefuelMinutes        float64 `json:"refuel_minutes"`
	LiftoffMinutes       float64 `json:"liftoff_minutes"`
	TimeTo10000FtMinutes float64 `json:"time_to_10000ft_minutes"`
	StopMinutes          float64 `json:"stop_minutes"`

	AscendAngleDeg     float64 `json:"ascend_angle_deg"`
	AscentRateNMPerMin float64 `json:"ascent_rate_nm_per_min"`
	AccelPhaseMinutes  float64 `json:"accel_phase_minutes"`
	AccelPhaseNM       float64 `json:"accel_phase_nm"`
	DescentNMPer1000Ft float64 `json:"descent_nm_per_1000ft"`

	CruiseEntrySpeedKt  float64 `json:"cruise_entry_speed_kt"`
	AccelRateKtPerMin   float64 `json:"accel_rate_kt_per_min"`
	CruiseSpeedFactor   float64 `json:"cruise_speed_factor"` // fraction of max speed held in cruise
	WestboundMultiplier float64 `json:"westbound_multiplier"`
}

// TaxiParams drives the taxi time model
type TaxiParams struct {
	HubBaseMinutes        float64 `json:"hub_base_minutes"`
	HubMaxMinutes         float64 `json:"hub_max_minutes"`
	HubPopulationFloor    float64 `json:"hub_population_floor"`
	HubPopulationPerStep  float64 `json:"hub_population_per_step"`
	SpokeMinutesPerPerson float64 `json:"spoke_minutes_per_person"`
	SpokeMaxMinutes       float64 `json:"spoke_max_minutes"`
}

// Assumptions is the complete constants surface of one pipeline run
type Assumptions struct {
	Demand        DemandParams      `json:"demand"`
	Timing        TimingParams      `json:"timing"`
	Taxi          TaxiParams        `json:"taxi"`
	Altitudes     AltitudePolicy    `json:"altitudes"`
	Jurisdictions JurisdictionTable `json:"jurisdictions"`
}

// DefaultAssumptions returns the constants used by the course project
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Demand: DemandParams{
			PercentOfFlyers: 0.005,
			MarketShare:     0.2,
			MinMiles:        150,
		},
		Timing: TimingParams{
			TurnaroundMinutes:    40,
			RefuelMinutes:        10,
			LiftoffMinutes:       1,
			TimeTo10000FtMinutes: 4.347,
			StopMinutes:          2,

			AscendAngleDeg:     6,
			AscentRateNMPerMin: 280.0 / 60.0,
			AccelPhaseMinutes:  1.2,
			AccelPhaseNM:       5.3,
			DescentNMPer1000Ft: 3,

			CruiseEntrySpeedKt:  280,
			AccelRateKtPerMin:   25,
			CruiseSpeedFactor:   0.8,
			WestboundMultiplier: 1.045,
		},
		Taxi: TaxiParams{
			HubBaseMinutes:        15,
			HubMaxMinutes:         20,
			HubPopulationFloor:    9_000_000,
			HubPopulationPerStep:  2_000_000,
			SpokeMinutesPerPerson: 0.0000075,
			SpokeMaxMinutes:       13,
		},
		Altitudes:     DefaultAltitudePolicy(),
		Jurisdictions: DefaultJurisdictions(),
	}
}

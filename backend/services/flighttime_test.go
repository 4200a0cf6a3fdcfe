// ABOUTME: Tests for phase model, taxi times and the flight time estimator
// ABOUTME: Fixture arithmetic is worked through in comments

package services

import (
	"errors"
	"math"
	"testing"

	"github.com/markalston/route-economics/backend/models"
)

func boeing737800() models.AircraftSpec {
	return models.AircraftSpec{Name: "737-800", FuelCapacityGal: 6875, MaxSpeedKt: 485, FuelBurnGalHr: 1050, MaxSeats: 189}
}

func defaultEstimator() *FlightTimeEstimator {
	return NewFlightTimeEstimator(models.DefaultAssumptions().Timing, RefuelNever)
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPhaseModel_ClimbFL200(t *testing.T) {
	// Height above 10,000 ft: 10,000 ft
	// Slant distance: 10,000 / sin(6°) = 95,667 ft = 15.7449 nm
	// Minutes: 1.2 + (15.7449 - 5.3) / (280/60) = 3.4382

	m := NewPhaseModel(models.DefaultAssumptions().Timing)
	climb, err := m.Climb(models.FlightLevel200)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !almostEqual(climb.DistanceNM, 15.7449, 0.0001) {
		t.Errorf("Expected climb distance 15.7449 nm, got %f", climb.DistanceNM)
	}
	if !almostEqual(climb.Minutes, 3.4382, 0.0001) {
		t.Errorf("Expected climb 3.4382 min, got %f", climb.Minutes)
	}
}

func TestPhaseModel_DescentFL380(t *testing.T) {
	// 28,000 ft to lose at 3 nm per 1000 ft = 84 nm
	// 84 / (280/60) = 18 minutes

	m := NewPhaseModel(models.DefaultAssumptions().Timing)
	descent, err := m.Descent(models.FlightLevel380)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !almostEqual(descent.DistanceNM, 84, 1e-9) {
		t.Errorf("Expected descent distance 84 nm, got %f", descent.DistanceNM)
	}
	if !almostEqual(descent.Minutes, 18, 1e-9) {
		t.Errorf("Expected descent 18 min, got %f", descent.Minutes)
	}
}

func TestPhaseModel_Idempotent(t *testing.T) {
	m := NewPhaseModel(models.DefaultAssumptions().Timing)
	for _, alt := range models.FlightLevels {
		first, _ := m.Climb(alt)
		second, _ := m.Climb(alt)
		if first != second {
			t.Errorf("Expected identical climb results at %d ft", alt)
		}
		d1, _ := m.Descent(alt)
		d2, _ := m.Descent(alt)
		if d1 != d2 {
			t.Errorf("Expected identical descent results at %d ft", alt)
		}
	}
}

func TestPhaseModel_InvalidAltitude(t *testing.T) {
	m := NewPhaseModel(models.DefaultAssumptions().Timing)
	for _, alt := range []int{0, 10000, 22000, 41000} {
		if _, err := m.Climb(alt); !errors.Is(err, models.ErrInvalidAltitude) {
			t.Errorf("Climb(%d): expected ErrInvalidAltitude, got %v", alt, err)
		}
		if _, err := m.Descent(alt); !errors.Is(err, models.ErrInvalidAltitude) {
			t.Errorf("Descent(%d): expected ErrInvalidAltitude, got %v", alt, err)
		}
	}
}

func TestPhaseModel_Acceleration(t *testing.T) {
	// (485 - 280) / 25 = 8.2 minutes at a mean 382.5 kt = 52.275 nm
	m := NewPhaseModel(models.DefaultAssumptions().Timing)
	accel := m.Acceleration(boeing737800())

	if !almostEqual(accel.Minutes, 8.2, 1e-9) {
		t.Errorf("Expected 8.2 min, got %f", accel.Minutes)
	}
	if !almostEqual(accel.DistanceNM, 52.275, 1e-9) {
		t.Errorf("Expected 52.275 nm, got %f", accel.DistanceNM)
	}
}

func TestTaxiTime(t *testing.T) {
	p := models.DefaultAssumptions().Taxi

	tests := []struct {
		name       string
		population float64
		hub        bool
		want       float64
	}{
		{"hub at floor", 9_000_000, true, 15},
		{"small hub", 6_300_000, true, 15},
		{"hub one step over", 9_500_000, true, 16},
		{"hub three steps over", 13_200_000, true, 18},
		{"hub capped", 20_200_000, true, 20},
		{"spoke linear", 1_000_000, false, 7.5},
		{"spoke capped", 6_200_000, false, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaxiTime(tt.population, tt.hub, p); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("Expected %v minutes, got %v", tt.want, got)
			}
		})
	}
}

func TestBuildTaxiTimes_UsesHubFlag(t *testing.T) {
	airports := []models.Airport{
		{ICAO: "KATL", Population: 6_300_000, IsHub: true},
		{ICAO: "KMIA", Population: 6_200_000},
	}
	taxi := BuildTaxiTimes(airports, models.DefaultAssumptions().Taxi)

	if taxi["KATL"] != 15 {
		t.Errorf("Expected hub KATL 15 min, got %v", taxi["KATL"])
	}
	if taxi["KMIA"] != 13 {
		t.Errorf("Expected spoke KMIA 13 min, got %v", taxi["KMIA"])
	}
}

func TestEstimate_Eastbound(t *testing.T) {
	// Scenario: 500 nm due east at FL200, 737-800, 10 min taxi at destination
	// Turnaround 40 + liftoff 1 + to 10,000 ft 4.347 = 45.347
	// Climb 3.4382 min over 15.7449 nm
	// Acceleration 8.2 min over 52.275 nm
	// Descent 6.4286 min over 30 nm
	// Cruise: (500 - 15.7449 - 52.275 - 30) / 388 kt × 60 = 62.1619
	// Stop 2 + taxi 10
	// Total 137.5756 → 137.58, no westbound bias

	leg := models.Leg{Source: "A", Dest: "B", DistanceNM: 500, BearingDeg: 90, CruiseAltitudeFt: models.FlightLevel200}
	minutes, err := defaultEstimator().Estimate(leg, boeing737800(), TaxiTimes{"B": 10})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !almostEqual(minutes, 137.58, 1e-9) {
		t.Errorf("Expected 137.58 minutes, got %v", minutes)
	}
}

func TestEstimate_WestboundBias(t *testing.T) {
	// Same leg flown due west: 137.5756 × (1 + 1.045) = 281.34
	// Southwest (225°) is 45° off west: 137.5756 × (1 + 1.045 × 0.5) = 209.46

	tests := []struct {
		bearing float64
		want    float64
	}{
		{270, 281.34},
		{225, 209.46},
		{315, 209.46},
		{180, 137.58},
		{0, 137.58},
		{45, 137.58},
	}

	for _, tt := range tests {
		leg := models.Leg{Source: "A", Dest: "B", DistanceNM: 500, BearingDeg: tt.bearing, CruiseAltitudeFt: models.FlightLevel200}
		minutes, err := defaultEstimator().Estimate(leg, boeing737800(), TaxiTimes{"B": 10})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !almostEqual(minutes, tt.want, 1e-9) {
			t.Errorf("Bearing %v: expected %v minutes, got %v", tt.bearing, tt.want, minutes)
		}
	}
}

func TestEstimate_SelfPair(t *testing.T) {
	for _, craft := range models.DefaultAircraft() {
		leg := models.Leg{Source: "KATL", Dest: "KATL"}
		minutes, err := defaultEstimator().Estimate(leg, craft, TaxiTimes{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if minutes != 0 {
			t.Errorf("Expected 0 minutes for self pair with %s, got %v", craft.Name, minutes)
		}
	}
}

func TestEstimate_AboveGroundMinimum(t *testing.T) {
	timing := models.DefaultAssumptions().Timing
	floor := timing.TurnaroundMinutes + timing.LiftoffMinutes + timing.TimeTo10000FtMinutes

	for _, d := range []float64{150, 300, 1000, 2500} {
		leg := models.Leg{Source: "A", Dest: "B", DistanceNM: d, BearingDeg: 90,
			CruiseAltitudeFt: models.DefaultAltitudePolicy().Select(d, false)}
		minutes, err := defaultEstimator().Estimate(leg, boeing737800(), TaxiTimes{"B": 5})
		if err != nil {
			t.Fatalf("Expected no error at %v nm, got %v", d, err)
		}
		if minutes < floor {
			t.Errorf("Expected at least %v minutes at %v nm, got %v", floor, d, minutes)
		}
	}
}

func TestEstimate_MissingTaxiTime(t *testing.T) {
	leg := models.Leg{Source: "A", Dest: "B", DistanceNM: 500, BearingDeg: 90, CruiseAltitudeFt: models.FlightLevel200}
	_, err := defaultEstimator().Estimate(leg, boeing737800(), TaxiTimes{"A": 10})
	if !errors.Is(err, models.ErrMissingTaxiTime) {
		t.Errorf("Expected ErrMissingTaxiTime, got %v", err)
	}
}

func TestEstimate_NegativeRemainingDistance(t *testing.T) {
	// 90 nm cannot fit 15.7449 + 52.275 + 30 = 98.02 nm of transitions
	leg := models.Leg{Source: "A", Dest: "B", DistanceNM: 90, BearingDeg: 90, CruiseAltitudeFt: models.FlightLevel200}
	_, err := defaultEstimator().Estimate(leg, boeing737800(), TaxiTimes{"B": 10})
	if !errors.Is(err, models.ErrNegativeRemainingDistance) {
		t.Errorf("Expected ErrNegativeRemainingDistance, got %v", err)
	}
}

func TestEstimate_InvalidAltitude(t *testing.T) {
	leg := models.Leg{Source: "A", Dest: "B", DistanceNM: 500, BearingDeg: 90, CruiseAltitudeFt: 21000}
	_, err := defaultEstimator().Estimate(leg, boeing737800(), TaxiTimes{"B": 10})
	if !errors.Is(err, models.ErrInvalidAltitude) {
		t.Errorf("Expected ErrInvalidAltitude, got %v", err)
	}
}

func TestEstimate_RefuelEndurance(t *testing.T) {
	// A 2000 gal tank at 1050 gal/hr lasts under two hours; 3000 nm at 388 kt
	// takes nearly eight, so the endurance policy adds the 10 refuel minutes.
	leg := models.Leg{Source: "A", Dest: "B", DistanceNM: 3000, BearingDeg: 90, CruiseAltitudeFt: models.FlightLevel350}
	small := boeing737800()
	small.FuelCapacityGal = 2000

	never, err := NewFlightTimeEstimator(models.DefaultAssumptions().Timing, RefuelNever).Estimate(leg, small, TaxiTimes{"B": 10})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	endurance, err := NewFlightTimeEstimator(models.DefaultAssumptions().Timing, RefuelEndurance).Estimate(leg, small, TaxiTimes{"B": 10})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !almostEqual(endurance-never, 10, 0.011) {
		t.Errorf("Expected refuel to add 10 minutes, got %v", endurance-never)
	}

	// Short leg stays within endurance
	short := models.Leg{Source: "A", Dest: "B", DistanceNM: 500, BearingDeg: 90, CruiseAltitudeFt: models.FlightLevel200}
	withPolicy, _ := NewFlightTimeEstimator(models.DefaultAssumptions().Timing, RefuelEndurance).Estimate(short, boeing737800(), TaxiTimes{"B": 10})
	if !almostEqual(withPolicy, 137.58, 1e-9) {
		t.Errorf("Expected no refuel on a short leg, got %v", withPolicy)
	}
}

func TestFlightTimeMatrix_RecordsFailures(t *testing.T) {
	legs := []models.Leg{
		{Source: "A", Dest: "A"},
		{Source: "A", Dest: "B", DistanceNM: 500, BearingDeg: 90, CruiseAltitudeFt: models.FlightLevel200},
		{Source: "A", Dest: "C", DistanceNM: 90, BearingDeg: 90, CruiseAltitudeFt: models.FlightLevel200},
	}

	table := defaultEstimator().Matrix([]string{"A", "B", "C"}, legs, boeing737800(), TaxiTimes{"B": 10, "C": 10})

	if v, ok := table.Minutes.Get("A", "A"); !ok || v != 0 {
		t.Errorf("Expected self cell 0, got %v (present %v)", v, ok)
	}
	if v, _ := table.Minutes.Get("A", "B"); !almostEqual(v, 137.58, 1e-9) {
		t.Errorf("Expected A->B 137.58, got %v", v)
	}
	if _, ok := table.Minutes.Get("A", "C"); ok {
		t.Error("Expected failed route to be absent from the grid")
	}
	if len(table.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(table.Failures))
	}
	f := table.Failures[0]
	if f.Source != "A" || f.Dest != "C" || f.Aircraft != "737-800" {
		t.Errorf("Expected failure for A->C 737-800, got %+v", f)
	}
}

func TestWestPercentage(t *testing.T) {
	tests := []struct {
		bearing, want float64
	}{
		{270, 1},
		{180, 0},
		{360, 0},
		{90, 0},
		{240, 2.0 / 3.0},
		{300, 2.0 / 3.0},
		{-90, 1},
	}
	for _, tt := range tests {
		if got := WestPercentage(tt.bearing); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("WestPercentage(%v): expected %v, got %v", tt.bearing, tt.want, got)
		}
	}
}

func TestFormatHMS(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "00:00:00"},
		{137.58, "02:17:35"},
		{59.999, "01:00:00"},
		{1.5, "00:01:30"},
		{725, "12:05:00"},
	}
	for _, tt := range tests {
		if got := FormatHMS(tt.minutes); got != tt.want {
			t.Errorf("FormatHMS(%v): expected %s, got %s", tt.minutes, tt.want, got)
		}
	}
}

func TestParseRefuelPolicy(t *testing.T) {
	if p, err := ParseRefuelPolicy("endurance"); err != nil || p != RefuelEndurance {
		t.Errorf("Expected endurance, got %q (%v)", p, err)
	}
	if _, err := ParseRefuelPolicy("always"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}

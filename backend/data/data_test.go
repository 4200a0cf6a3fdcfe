package data

import (
	"strings"
	"testing"
)

func TestSeedAirports(t *testing.T) {
	airports, err := SeedAirports()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(airports) != 31 {
		t.Errorf("Expected 31 airports, got %d", len(airports))
	}
	if airports[0].ICAO != "KATL" {
		t.Errorf("Expected KATL first, got %s", airports[0].ICAO)
	}

	foreign := 0
	for _, a := range airports {
		if a.Jurisdiction != "US" {
			foreign++
			if a.ICAO != "LFPG" {
				t.Errorf("Expected only LFPG outside the US, got %s", a.ICAO)
			}
		}
		if a.IsHub {
			t.Errorf("Expected seed table not to mark hubs, got %s", a.ICAO)
		}
	}
	if foreign != 1 {
		t.Errorf("Expected 1 foreign airport, got %d", foreign)
	}
}

func TestReadAirports_InvalidCoordinate(t *testing.T) {
	input := `icao,name,latitude_deg,longitude_deg,population,timezone,jurisdiction
XBAD,Bad,95.0,0,1000,UTC,US
`
	if _, err := ReadAirports(strings.NewReader(input)); err == nil {
		t.Error("Expected error for out-of-range latitude")
	}
}

func TestReadAirports_Duplicate(t *testing.T) {
	input := `icao,name,latitude_deg,longitude_deg,population,timezone,jurisdiction
KAAA,A,10,10,1000,UTC,US
KAAA,A,10,10,1000,UTC,US
`
	if _, err := ReadAirports(strings.NewReader(input)); err == nil {
		t.Error("Expected error for duplicate airport")
	}
}

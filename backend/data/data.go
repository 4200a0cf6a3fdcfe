// ABOUTME: Embedded seed table of candidate airports
// ABOUTME: Parsed with gocsv so the pipeline can run without network access

package data

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/markalston/route-economics/backend/models"
)

//go:embed airports.csv
var seedCSV []byte

// SeedAirports returns the built-in airport table in file order
func SeedAirports() ([]models.Airport, error) {
	var airports []models.Airport
	if err := gocsv.UnmarshalBytes(seedCSV, &airports); err != nil {
		return nil, fmt.Errorf("parsing seed airports: %w", err)
	}
	return validate(airports)
}

// ReadAirports parses an airport table with the same columns as the seed
func ReadAirports(r io.Reader) ([]models.Airport, error) {
	var airports []models.Airport
	if err := gocsv.Unmarshal(r, &airports); err != nil {
		return nil, fmt.Errorf("parsing airports: %w", err)
	}
	return validate(airports)
}

func validate(airports []models.Airport) ([]models.Airport, error) {
	seen := make(map[string]bool, len(airports))
	for _, a := range airports {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if seen[a.ICAO] {
			return nil, fmt.Errorf("duplicate airport %s", a.ICAO)
		}
		seen[a.ICAO] = true
	}
	return airports, nil
}

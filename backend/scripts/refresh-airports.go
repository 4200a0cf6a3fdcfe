// ABOUTME: Refreshes the embedded airport seed table from airportdb.io
// ABOUTME: Keeps populations, timezones, and jurisdictions; rewrites coordinates and names

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/markalston/route-economics/backend/services"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <output-csv>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Requires AIRPORTDB_TOKEN in the environment\n")
		os.Exit(1)
	}

	token := os.Getenv("AIRPORTDB_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "AIRPORTDB_TOKEN is required")
		os.Exit(1)
	}
	url := os.Getenv("AIRPORTDB_URL")
	if url == "" {
		url = "https://airportdb.io/api/v1"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := services.NewAirportDBClient(url, token, 30*time.Second, services.SeedProvider{})
	airports, err := client.Airports(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch airports: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&airports, f); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d airports to %s\n", len(airports), os.Args[1])
}

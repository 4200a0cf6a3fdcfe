// ABOUTME: Local wall-clock time at each airport from its IANA timezone
// ABOUTME: The clock is injected so callers and tests control "now"

package services

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/markalston/route-economics/backend/models"
)

// LocalTimes converts now into each airport's timezone, in airport order
func LocalTimes(airports []models.Airport, now time.Time) ([]models.LocalTime, error) {
	out := make([]models.LocalTime, 0, len(airports))
	for _, a := range airports {
		loc, err := time.LoadLocation(a.Timezone)
		if err != nil {
			return nil, fmt.Errorf("airport %s: loading timezone %q: %w", a.ICAO, a.Timezone, err)
		}
		local := now.In(loc)
		out = append(out, models.LocalTime{
			Airport:   a.ICAO,
			Timezone:  a.Timezone,
			LocalTime: local.Format("2006-01-02 15:04:05"),
			UTCOffset: local.Format("-07:00"),
		})
	}
	return out, nil
}

// ABOUTME: Tabular and geographic exports of pipeline results
// ABOUTME: Square grid CSVs, long-form route CSV, KML network map and ordered hub JSON

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/iancoleman/orderedmap"
	"github.com/markalston/route-economics/backend/models"
	"github.com/markalston/route-economics/backend/services"
	"github.com/twpayne/go-kml"
)

// GridCSV writes a square grid with airports as both header row and first column.
// Cells missing from the grid are left empty.
func GridCSV[T any](w io.Writer, g *models.Grid[T], format func(T) string) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, g.Airports...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, src := range g.Airports {
		row := make([]string, 0, len(g.Airports)+1)
		row = append(row, src)
		for _, dst := range g.Airports {
			if v, ok := g.Get(src, dst); ok {
				row = append(row, format(v))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", src, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatFloat renders a float with the fewest digits that round-trip
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt renders an integer cell
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// RouteRow is one line of the long-form route export
type RouteRow struct {
	Source        string  `csv:"source"`
	Dest          string  `csv:"dest"`
	Aircraft      string  `csv:"aircraft"`
	DistanceNM    float64 `csv:"distance_nm"`
	BearingDeg    float64 `csv:"bearing_deg"`
	AltitudeFt    int     `csv:"cruise_altitude_ft"`
	International bool    `csv:"international"`
	DailyDemand   int     `csv:"daily_demand"`
	FlightMinutes float64 `csv:"flight_minutes"`
	FlightTime    string  `csv:"flight_time"`
	CostUSD       float64 `csv:"cost_usd"`
	Error         string  `csv:"error"`
}

// RouteRows flattens every served non-self route and aircraft of a result
func RouteRows(res *services.Result) ([]*RouteRow, error) {
	var rows []*RouteRow
	for _, src := range res.Distances.Airports {
		for _, dst := range res.Distances.Airports {
			if src == dst {
				continue
			}
			summary, err := res.Route(src, dst)
			if err != nil {
				return nil, err
			}
			if !summary.Reachable {
				continue
			}
			for _, a := range summary.Aircraft {
				rows = append(rows, &RouteRow{
					Source:        src,
					Dest:          dst,
					Aircraft:      a.Aircraft,
					DistanceNM:    summary.DistanceNM,
					BearingDeg:    summary.BearingDeg,
					AltitudeFt:    summary.CruiseAltitudeFt,
					International: summary.International,
					DailyDemand:   summary.DailyDemand,
					FlightMinutes: a.FlightMinutes,
					FlightTime:    a.FlightTime,
					CostUSD:       a.CostUSD,
					Error:         a.Error,
				})
			}
		}
	}
	return rows, nil
}

// RoutesCSV writes the long-form route table
func RoutesCSV(w io.Writer, res *services.Result) error {
	rows, err := RouteRows(res)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing routes: %w", err)
	}
	return nil
}

// HubRankingsJSON writes rankings as a JSON object whose key order is the rank order
func HubRankingsJSON(w io.Writer, ranks []models.HubRank) error {
	o := orderedmap.New()
	for _, r := range ranks {
		o.Set(r.Airport, r.Total)
	}

	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding hub rankings: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

var (
	hubLineColor   = color.RGBA{R: 124, G: 58, B: 237, A: 255}
	spokeLineColor = color.RGBA{R: 107, G: 114, B: 128, A: 160}
)

// NetworkKML writes airports as placemarks and every served hub route as a line.
// Line width grows with daily demand.
func NetworkKML(w io.Writer, res *services.Result) error {
	elements := make([]kml.Element, 0, len(res.Airports))

	for _, a := range res.Airports {
		desc := fmt.Sprintf("%s, population %.0f, taxi %.1f min", a.Name, a.Population, res.TaxiTimes[a.ICAO])
		if a.IsHub {
			desc += ", hub"
		}
		elements = append(elements, kml.Placemark(
			kml.Name(a.ICAO),
			kml.Description(desc),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: a.Longitude, Lat: a.Latitude}),
			),
		))
	}

	for _, src := range res.Airports {
		if !src.IsHub {
			continue
		}
		for _, dst := range res.Airports {
			if src.ICAO == dst.ICAO {
				continue
			}
			summary, err := res.Route(src.ICAO, dst.ICAO)
			if err != nil {
				return err
			}
			if !summary.Reachable {
				continue
			}

			lineColor := spokeLineColor
			if dst.IsHub {
				lineColor = hubLineColor
			}
			elements = append(elements, kml.Placemark(
				kml.Name(src.ICAO+"-"+dst.ICAO),
				kml.Description(fmt.Sprintf("%.0f nm, %d passengers/day", summary.DistanceNM, summary.DailyDemand)),
				kml.Style(
					kml.LineStyle(
						kml.Color(lineColor),
						kml.Width(lineWidth(summary.DailyDemand)),
					),
				),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(
						kml.Coordinate{Lon: src.Longitude, Lat: src.Latitude},
						kml.Coordinate{Lon: dst.Longitude, Lat: dst.Latitude},
					),
				),
			))
		}
	}

	return kml.KML(kml.Document(elements...)).WriteIndent(w, "", "  ")
}

func lineWidth(demand int) float64 {
	switch {
	case demand >= 1000:
		return 6
	case demand >= 300:
		return 4
	case demand >= 100:
		return 2
	default:
		return 1
	}
}

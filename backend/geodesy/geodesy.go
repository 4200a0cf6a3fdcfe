// ABOUTME: Distance and initial bearing between two coordinates
// ABOUTME: WGS84 ellipsoidal inverse by default, spherical great-circle as an alternative

package geodesy

import (
	"fmt"
	"math"

	"github.com/markalston/route-economics/backend/models"
	"github.com/skypies/geo"
	"github.com/tidwall/geodesic"
)

// Method selects the Earth model used for a whole run
type Method string

const (
	MethodGeodesic  Method = "geodesic"
	MethodSpherical Method = "spherical"
)

// ParseMethod validates a method name
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodGeodesic, MethodSpherical:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown distance method %q (want %q or %q)", s, MethodGeodesic, MethodSpherical)
	}
}

// Calculator computes distances and bearings with a single method.
// SphericalScale multiplies spherical distances; it is an unvalidated correction
// and defaults to 1.
type Calculator struct {
	method         Method
	sphericalScale float64
}

// NewCalculator creates a calculator for the given method
func NewCalculator(method Method, sphericalScale float64) *Calculator {
	if sphericalScale <= 0 {
		sphericalScale = 1
	}
	return &Calculator{method: method, sphericalScale: sphericalScale}
}

// Method returns the Earth model in use
func (c *Calculator) Method() Method {
	return c.method
}

// DistanceAndBearing returns the distance in nautical miles and the initial bearing
// from a to b in degrees, normalized to [0, 360).
func (c *Calculator) DistanceAndBearing(a, b models.Coordinate) (float64, float64, error) {
	if err := validate(a, b); err != nil {
		return 0, 0, err
	}

	if c.method == MethodSpherical {
		from := geo.Latlong{Lat: a.Latitude, Long: a.Longitude}
		to := geo.Latlong{Lat: b.Latitude, Long: b.Longitude}
		return from.DistNM(to) * c.sphericalScale, NormalizeBearing(from.BearingTowards(to)), nil
	}

	nm, bearing := inverse(a, b)
	return nm, bearing, nil
}

// DistanceAndBearing solves the WGS84 inverse problem for a and b
func DistanceAndBearing(a, b models.Coordinate) (float64, float64, error) {
	if err := validate(a, b); err != nil {
		return 0, 0, err
	}
	nm, bearing := inverse(a, b)
	return nm, bearing, nil
}

func validate(a, b models.Coordinate) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return b.Validate()
}

func inverse(a, b models.Coordinate) (float64, float64) {
	var meters, azi1 float64
	geodesic.WGS84.Inverse(a.Latitude, a.Longitude, b.Latitude, b.Longitude, &meters, &azi1, nil)
	return meters / models.MetersPerNM, NormalizeBearing(azi1)
}

// NormalizeBearing maps any angle in degrees into [0, 360)
func NormalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// AngularDistance returns the shorter arc between two headings, in [0, 180]
func AngularDistance(a, b float64) float64 {
	d := math.Abs(NormalizeBearing(a) - NormalizeBearing(b))
	return math.Min(d, 360-d)
}

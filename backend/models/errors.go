// ABOUTME: Error taxonomy for the route economics pipeline
// ABOUTME: Sentinel errors plus RouteError, which names the failing pair and aircraft

package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinate         = errors.New("invalid coordinate")
	ErrInvalidAltitude           = errors.New("invalid cruise altitude")
	ErrNoReachableDestinations   = errors.New("no reachable destinations")
	ErrMissingTaxiTime           = errors.New("missing taxi time")
	ErrNegativeRemainingDistance = errors.New("climb, acceleration and descent exceed route distance")
	ErrUnknownJurisdiction       = errors.New("unknown jurisdiction")
	ErrUnknownAirport            = errors.New("unknown airport")
)

// RouteError reports which airport pair and aircraft a calculation failed for
type RouteError struct {
	Source   string
	Dest     string
	Aircraft string
	Err      error
}

func (e *RouteError) Error() string {
	switch {
	case e.Aircraft != "" && e.Dest != "":
		return fmt.Sprintf("route %s->%s (%s): %v", e.Source, e.Dest, e.Aircraft, e.Err)
	case e.Dest != "":
		return fmt.Sprintf("route %s->%s: %v", e.Source, e.Dest, e.Err)
	default:
		return fmt.Sprintf("airport %s: %v", e.Source, e.Err)
	}
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

// RouteFailure is the serializable form of a RouteError
type RouteFailure struct {
	Source   string `json:"source"`
	Dest     string `json:"dest"`
	Aircraft string `json:"aircraft"`
	Reason   string `json:"reason"`
}

// NewRouteFailure converts a route error into a failure record
func NewRouteFailure(err *RouteError) RouteFailure {
	return RouteFailure{
		Source:   err.Source,
		Dest:     err.Dest,
		Aircraft: err.Aircraft,
		Reason:   err.Err.Error(),
	}
}

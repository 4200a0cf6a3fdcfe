// ABOUTME: Ordered airport-by-airport matrix used for every pipeline artifact
// ABOUTME: Keeps insertion order of airports for tabular export and stable ranking

package models

import "math"

// Unreachable marks a pair closer than the minimum reachable distance
const Unreachable = -1.0

// Grid is a square matrix keyed by (source, destination) airport id.
// Airports preserves insertion order; Values may omit pairs that were not computed.
type Grid[T any] struct {
	Airports []string                `json:"airports"`
	Values   map[string]map[string]T `json:"values"`
}

// NewGrid creates an empty grid over the given airports
func NewGrid[T any](airports []string) *Grid[T] {
	ids := make([]string, len(airports))
	copy(ids, airports)
	values := make(map[string]map[string]T, len(ids))
	for _, id := range ids {
		values[id] = make(map[string]T, len(ids))
	}
	return &Grid[T]{Airports: ids, Values: values}
}

// Set stores the value for a pair
func (g *Grid[T]) Set(src, dst string, v T) {
	row, ok := g.Values[src]
	if !ok {
		row = make(map[string]T)
		g.Values[src] = row
	}
	row[dst] = v
}

// Get returns the value for a pair and whether it is present
func (g *Grid[T]) Get(src, dst string) (T, bool) {
	v, ok := g.Values[src][dst]
	return v, ok
}

// Len returns the number of airports on each axis
func (g *Grid[T]) Len() int {
	return len(g.Airports)
}

// Round rounds v to the given number of decimal places, half away from zero
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

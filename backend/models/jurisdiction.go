// ABOUTME: Per-jurisdiction fuel prices and airport fees
// ABOUTME: Adding a country is a new table row, never a new code branch

package models

import "fmt"

// LitersPerGallon converts per-liter fuel prices to per-gallon
const LitersPerGallon = 3.785

// Jurisdiction carries the prices that depend on where an airport is
type Jurisdiction struct {
	Code            string  `json:"code"`
	FuelPricePerGal float64 `json:"fuel_price_per_gal"`
	TakeoffFee      float64 `json:"takeoff_fee"`
	LandingFee      float64 `json:"landing_fee"`
}

// JurisdictionTable maps a jurisdiction code to its prices
type JurisdictionTable map[string]Jurisdiction

// DefaultJurisdictions returns US and France prices in USD
func DefaultJurisdictions() JurisdictionTable {
	return JurisdictionTable{
		"US": {Code: "US", FuelPricePerGal: 6.19, TakeoffFee: 2000, LandingFee: 2000},
		"FR": {Code: "FR", FuelPricePerGal: 2.29 * LitersPerGallon, TakeoffFee: 2450, LandingFee: 2450},
	}
}

// Lookup returns the jurisdiction for a code
func (t JurisdictionTable) Lookup(code string) (Jurisdiction, error) {
	j, ok := t[code]
	if !ok {
		return Jurisdiction{}, fmt.Errorf("%w: %q", ErrUnknownJurisdiction, code)
	}
	return j, nil
}

// Package quote prices shipments with the flat tariff the marketing site
// quotes: a base fare in naira, a surcharge for fragile items and a per-kg
// rate.
package quote

import "strings"

const (
	baseFare      = 2000.0
	fragileFactor = 1.5
	ratePerKg     = 500.0
	defaultWeight = 1.0
	fragileItem   = "fragile"
)

// Estimate returns the estimated price in naira. A missing or nonsense
// weight counts as one kilogram.
func Estimate(itemType string, weightKG float64) float64 {
	base := baseFare
	if strings.EqualFold(strings.TrimSpace(itemType), fragileItem) {
		base *= fragileFactor
	}
	if weightKG <= 0 {
		weightKG = defaultWeight
	}
	return base + weightKG*ratePerKg
}

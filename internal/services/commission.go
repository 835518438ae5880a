package services

import "math"

// CommissionValue derives the commission amount from a sale value and a
// percentage, rounded to 2 decimals. Every sale write recomputes this; the
// submitted draft's commission field is never trusted.
func CommissionValue(value, percentage float64) float64 {
	return math.Round(value*percentage) / 100
}

package models

import "math"

// NormalizeAmount truncates a monetary value to 2 decimal places.
// Truncation, not rounding: NormalizeAmount(1.239) == 1.23.
// Every balance write in the system passes through this function.
func NormalizeAmount(v float64) float64 {
	return math.Floor(v*100) / 100
}

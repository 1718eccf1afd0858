package util

import "math"

// Round rounds v to the given number of decimal places.
// Feature vector values are rounded to 4 places for stable wire
// serialization; tier thresholds compare against unrounded percents.
func Round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Clamp constrains v to the inclusive range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

package core

import "math"

// SafeDiv divides num by den, mapping a zero denominator and non-finite
// results to 0. Every derived ratio in the board goes through this so a day
// with no registrations or no spend renders as 0 instead of an error.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places, the display precision used across
// reports and API responses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

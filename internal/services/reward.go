package services

import "math"

// ComputeReward returns fine × rate rounded to cents.
func ComputeReward(fine int, rate float64) float64 {
	return math.Round(float64(fine)*rate*100) / 100
}

package cycle

import "math"

// weightedMean applies exponentially decaying weights decay^i, with i = 0 for
// the first value. Callers pass lengths ordered most-recent-first so the
// newest cycles dominate.
func weightedMean(values []int, decay float64) float64 {
	if len(values) == 0 {
		return 0
	}

	weight := 1.0
	var weightedSum, weightTotal float64
	for _, value := range values {
		weightedSum += float64(value) * weight
		weightTotal += weight
		weight *= decay
	}
	return weightedSum / weightTotal
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

// populationStdDev uses ddof = 0 and the plain unweighted mean, even though
// the headline average is recency-weighted.
func populationStdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := meanInts(values)
	var sumSquares float64
	for _, value := range values {
		diff := float64(value) - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

func roundToInt(value float64) int {
	return int(math.Round(value))
}

func roundTo1(value float64) float64 {
	return math.Round(value*10) / 10
}

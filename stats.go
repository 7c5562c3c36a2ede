package dispatch

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics for a numeric sample.
type Summary struct {
	N      int
	Min    float64
	Q1     float64 // 25th percentile
	Median float64
	Mean   float64
	Q3     float64 // 75th percentile
	Max    float64
	Stddev float64 // Sample standard deviation (n-1)
}

// Summarize computes descriptive statistics. An empty sample yields N=0 and
// NaN for every statistic.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		nan := math.NaN()
		return Summary{Min: nan, Q1: nan, Median: nan, Mean: nan, Q3: nan, Max: nan, Stddev: nan}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	// Mean
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	// Sample standard deviation
	stddev := math.NaN()
	if len(sorted) > 1 {
		var variance float64
		for _, v := range sorted {
			diff := v - mean
			variance += diff * diff
		}
		stddev = math.Sqrt(variance / float64(len(sorted)-1))
	}

	return Summary{
		N:      len(sorted),
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.50),
		Mean:   mean,
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		Stddev: stddev,
	}
}

// Quantile returns the p-th quantile (0 ≤ p ≤ 1) of an ascending sample,
// interpolating linearly between the two nearest order statistics.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// sumSquares returns Σ(v-mean)² and the mean.
func sumSquares(values []float64) (ss, mean float64) {
	if len(values) == 0 {
		return 0, math.NaN()
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return ss, mean
}

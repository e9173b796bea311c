package analytics

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// Quantile returns the p-quantile (0 <= p <= 1) using linear
// interpolation between closest ranks.
func Quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Median returns the 0.50 quantile.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// scaleInto maps v from [lo, hi] linearly into [outLo, outHi]. A
// degenerate input range yields the midpoint of the output range.
func scaleInto(v, lo, hi, outLo, outHi float64) float64 {
	if hi-lo < 1e-9 {
		return (outLo + outHi) / 2
	}
	return (v-lo)/(hi-lo)*(outHi-outLo) + outLo
}

// Package stats provides the column statistics used by the preprocessing
// operations. Inputs are the valid (non-missing) values of a column; an empty
// input yields NaN wherever the statistic is undefined.
package stats

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean of a slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Variance computes the sample variance (ddof = 1). Fewer than two values
// have no spread and return 0.
func Variance(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}
	mean := Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return ss / float64(n-1)
}

// Std computes the sample standard deviation.
func Std(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	min, max := x[0], x[0]
	for _, v := range x[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Median returns the 50th percentile.
func Median(x []float64) float64 {
	return Percentile(x, 50)
}

// Percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between the two closest ranks. The input is not modified.
func Percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= n {
		return cp[lower]
	}
	weight := rank - float64(lower)
	return cp[lower] + (cp[upper]-cp[lower])*weight
}

// Quartiles returns Q1 and Q3.
func Quartiles(x []float64) (q1, q3 float64) {
	return Percentile(x, 25), Percentile(x, 75)
}

// Mode returns the most frequent value. Ties resolve to the smallest value.
// ok is false for an empty input.
func Mode(x []float64) (mode float64, ok bool) {
	if len(x) == 0 {
		return 0, false
	}
	counts := make(map[float64]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	best := 0
	for v, c := range counts {
		if c > best || (c == best && v < mode) {
			best, mode = c, v
		}
	}
	return mode, true
}

// ModeString is Mode for text values; ties resolve lexicographically.
func ModeString(x []string) (mode string, ok bool) {
	if len(x) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	best := 0
	for v, c := range counts {
		if c > best || (c == best && v < mode) {
			best, mode = c, v
		}
	}
	return mode, true
}

// IsWhole reports whether v is a finite number without a fractional part.
func IsWhole(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
}

// Package stats provides the numeric summaries used by the analysis reports.
package stats

import (
	"cmp"
	"math"
	"slices"
)

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean[T int | int64 | float64](values []T) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64

	for _, v := range values {
		sum += float64(v)
	}

	return sum / float64(len(values))
}

// Percentile returns the p-th percentile of values using linear interpolation.
// p must be in [0, 1]. The input slice is not modified (a copy is sorted internally).
// Returns 0 for an empty slice.
func Percentile[T int | int64 | float64](values []T, p float64) float64 {
	count := len(values)
	if count == 0 {
		return 0
	}

	sorted := make([]float64, count)
	for i, v := range values {
		sorted[i] = float64(v)
	}

	slices.Sort(sorted)

	idx := p * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper || upper >= count {
		return sorted[lower]
	}

	frac := idx - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// PercentileMedian is the percentile rank of the median.
const PercentileMedian = 0.5

// Median returns the 50th percentile of values.
func Median[T int | int64 | float64](values []T) float64 {
	return Percentile(values, PercentileMedian)
}

// Min returns the smallest element in values.
// Returns the zero value of T for an empty slice.
func Min[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	result := values[0]

	for _, v := range values[1:] {
		if v < result {
			result = v
		}
	}

	return result
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	result := values[0]

	for _, v := range values[1:] {
		if v > result {
			result = v
		}
	}

	return result
}

// Sum returns the sum of all elements in values.
func Sum[T cmp.Ordered](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

// Summary holds the distribution statistics reported for a metric.
type Summary struct {
	Min    int64
	Max    int64
	Median float64
	Mean   float64
}

// Describe computes the Summary of values in one pass plus a sort for the median.
func Describe(values []int64) Summary {
	return Summary{
		Min:    Min(values),
		Max:    Max(values),
		Median: Median(values),
		Mean:   Mean(values),
	}
}

package freq

import (
	"cmp"
	"errors"
	"slices"
)

// ErrEmptyDataset is returned when the ranked sequence carries no frequency
// at all; the coverage fractions would be divisions by zero.
var ErrEmptyDataset = errors.New("empty dataset: grand total is zero")

// RankGroups stable-sorts groups by total descending. Equal totals keep
// input order; the sort must be stable because the Pareto thresholds are
// order-sensitive at tie boundaries.
func RankGroups(groups []GroupTotal) []GroupTotal {
	ranked := slices.Clone(groups)

	slices.SortStableFunc(ranked, func(a, b GroupTotal) int {
		return cmp.Compare(b.Total, a.Total)
	})

	return ranked
}

// RankFlat stable-sorts flattened entries by count descending, preserving
// first-encounter order for ties.
func RankFlat(entries []FlatEntry) []FlatEntry {
	ranked := slices.Clone(entries)

	slices.SortStableFunc(ranked, func(a, b FlatEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return ranked
}

// RankLeaves stable-sorts leaf counters by count descending.
func RankLeaves(leaves []Leaf) []Leaf {
	ranked := slices.Clone(leaves)

	slices.SortStableFunc(ranked, func(a, b Leaf) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return ranked
}

// Threshold records where a coverage fraction was first crossed in the
// ranked sequence.
type Threshold struct {
	// Fraction is the configured coverage target in (0, 1].
	Fraction float64
	// Entries is the length of the smallest prefix whose cumulative total
	// reaches the fraction.
	Entries int
	// EntriesPct is Entries as a percentage of the ranked sequence length.
	EntriesPct float64
	// CumulativeTotal is the summed frequency of that prefix.
	CumulativeTotal int64
	// CumulativePct is CumulativeTotal as a percentage of the grand total.
	CumulativePct float64
}

const percentMultiplier = 100

// Scan walks the ranked sequence once, accumulating a running total, and
// records the first position at which each threshold fraction is satisfied.
// Each threshold is recorded at most once; later positions never overwrite
// it. Thresholds no prefix satisfies are absent from the result.
func Scan[T any](ranked []T, total func(T) int64, fractions []float64) ([]Threshold, error) {
	var grandTotal int64

	for _, entry := range ranked {
		grandTotal += total(entry)
	}

	if grandTotal == 0 {
		return nil, ErrEmptyDataset
	}

	pending := slices.Clone(fractions)
	results := make([]Threshold, 0, len(fractions))

	var cumulative int64

	for position, entry := range ranked {
		cumulative += total(entry)
		coverage := float64(cumulative) / float64(grandTotal)

		remaining := pending[:0]

		for _, fraction := range pending {
			if coverage >= fraction {
				results = append(results, Threshold{
					Fraction:        fraction,
					Entries:         position + 1,
					EntriesPct:      float64(position+1) / float64(len(ranked)) * percentMultiplier,
					CumulativeTotal: cumulative,
					CumulativePct:   coverage * percentMultiplier,
				})
			} else {
				remaining = append(remaining, fraction)
			}
		}

		pending = remaining
		if len(pending) == 0 {
			break
		}
	}

	slices.SortFunc(results, func(a, b Threshold) int {
		return cmp.Compare(a.Fraction, b.Fraction)
	})

	return results, nil
}

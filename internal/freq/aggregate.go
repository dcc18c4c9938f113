package freq

import "slices"

// Options configures one aggregation pass.
type Options struct {
	// ExcludeGroups drops these group keys wholesale.
	ExcludeGroups map[string]struct{}
	// ExcludeLeaves drops these leaf keys from every group.
	ExcludeLeaves map[string]struct{}
}

// NewOptions builds Options from the configured exclusion lists.
func NewOptions(excludeGroups, excludeLeaves []string) Options {
	opts := Options{
		ExcludeGroups: make(map[string]struct{}, len(excludeGroups)),
		ExcludeLeaves: make(map[string]struct{}, len(excludeLeaves)),
	}

	for _, key := range excludeGroups {
		opts.ExcludeGroups[key] = struct{}{}
	}

	for _, key := range excludeLeaves {
		opts.ExcludeLeaves[key] = struct{}{}
	}

	return opts
}

// GroupTotal is the aggregation result for one retained group.
type GroupTotal struct {
	Key string
	// Total is the sum of retained leaf counts. A group whose retained
	// total is zero is dropped from the result set entirely.
	Total int64
	// Leaves are the retained counters in document order.
	Leaves []Leaf
}

// UniqueLeaves is the number of distinct retained leaf keys.
func (g GroupTotal) UniqueLeaves() int {
	return len(g.Leaves)
}

// Tally carries the exclusion side-counts of one traversal.
type Tally struct {
	// ExcludedGroups counts groups dropped wholesale.
	ExcludedGroups int
	// ExcludedLeafOccurrences sums the counts of dropped leaves, so one
	// excluded leaf key carrying a large frequency is tallied in full.
	ExcludedLeafOccurrences int64
	// ExcludedLeaves holds the per-key sums behind
	// ExcludedLeafOccurrences, in first-encounter order.
	ExcludedLeaves []FlatEntry
	// RawGroups counts groups before any filtering.
	RawGroups int
}

// traverse walks the table once, applying the exclusion sets and invoking
// visit for every retained (group, leaf) pair. Both aggregation modes are
// built on this single primitive so they cannot drift apart.
func traverse(table Table, opts Options, visit func(groupKey string, leaf Leaf)) Tally {
	tally := Tally{RawGroups: len(table)}
	excludedIndex := make(map[string]int)

	for _, group := range table {
		if _, excluded := opts.ExcludeGroups[group.Key]; excluded {
			tally.ExcludedGroups++

			continue
		}

		for _, leaf := range group.Leaves {
			if _, excluded := opts.ExcludeLeaves[leaf.Key]; excluded {
				tally.ExcludedLeafOccurrences += leaf.Count

				pos, seen := excludedIndex[leaf.Key]
				if !seen {
					pos = len(tally.ExcludedLeaves)
					excludedIndex[leaf.Key] = pos

					tally.ExcludedLeaves = append(tally.ExcludedLeaves, FlatEntry{Key: leaf.Key})
				}

				tally.ExcludedLeaves[pos].Count += leaf.Count

				continue
			}

			visit(group.Key, leaf)
		}
	}

	return tally
}

// Aggregation is the per-group aggregation result.
type Aggregation struct {
	// Groups holds the retained groups in document order.
	Groups []GroupTotal
	Tally  Tally
}

// TotalFrequency sums the retained totals across all groups.
func (a Aggregation) TotalFrequency() int64 {
	var total int64

	for _, group := range a.Groups {
		total += group.Total
	}

	return total
}

// Aggregate sums retained leaf counts per group. Groups left with a zero
// total vanish, which makes "every leaf was excluded" indistinguishable
// from "empty group"; neither appears in the result.
func Aggregate(table Table, opts Options) Aggregation {
	var agg Aggregation

	index := make(map[string]int)

	agg.Tally = traverse(table, opts, func(groupKey string, leaf Leaf) {
		pos, seen := index[groupKey]
		if !seen {
			pos = len(agg.Groups)
			index[groupKey] = pos

			agg.Groups = append(agg.Groups, GroupTotal{Key: groupKey})
		}

		agg.Groups[pos].Total += leaf.Count
		agg.Groups[pos].Leaves = append(agg.Groups[pos].Leaves, leaf)
	})

	agg.Groups = slices.DeleteFunc(agg.Groups, func(group GroupTotal) bool {
		return group.Total == 0
	})

	return agg
}

// FlatEntry is one entry of the flattened per-leaf-key frequency mapping.
type FlatEntry struct {
	Key   string
	Count int64
}

// FlatAggregation is the result of flattening one nesting level: a single
// frequency mapping keyed by leaf key, accumulated across all groups.
type FlatAggregation struct {
	// Entries holds the flattened counters in first-encounter order.
	Entries []FlatEntry
	// RetainedPairs counts the retained (group, leaf) pairs.
	RetainedPairs int
	Tally         Tally
}

// TotalFrequency sums the flattened counts.
func (a FlatAggregation) TotalFrequency() int64 {
	var total int64

	for _, entry := range a.Entries {
		total += entry.Count
	}

	return total
}

// Flatten aggregates leaf counts across all groups into one flat frequency
// mapping. Same traversal as Aggregate, one level collapsed.
func Flatten(table Table, opts Options) FlatAggregation {
	var agg FlatAggregation

	index := make(map[string]int)

	agg.Tally = traverse(table, opts, func(_ string, leaf Leaf) {
		agg.RetainedPairs++

		pos, seen := index[leaf.Key]
		if !seen {
			pos = len(agg.Entries)
			index[leaf.Key] = pos

			agg.Entries = append(agg.Entries, FlatEntry{Key: leaf.Key})
		}

		agg.Entries[pos].Count += leaf.Count
	})

	return agg
}

// Package freq implements the frequency-distribution engine: aggregation of
// the nested entrypoint/path-hash counter table, ranking, and the Pareto
// threshold scan.
package freq

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/execlens/execlens/internal/jsonio"
)

// Leaf is one second-level counter: a path hash and its observed frequency.
type Leaf struct {
	Key   string
	Count int64
}

// Group is one top-level entry of the frequency table: an entrypoint and its
// per-path-hash counters, in document order.
type Group struct {
	Key    string
	Leaves []Leaf
}

// Table is the loaded frequency table. Slice order is document order; the
// ranking tie-break depends on it, so the decoder never reorders keys.
type Table []Group

// DecodeTable parses data as a two-level mapping from group key to leaf key
// to non-negative count. Valid JSON with any other shape fails with
// jsonio.ErrSchema.
func DecodeTable(data []byte) (Table, error) {
	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("%w: top level is not an object", jsonio.ErrSchema)
	}

	var table Table

	iter.ReadObjectCB(func(groupIter *jsoniter.Iterator, groupKey string) bool {
		if groupIter.WhatIsNext() != jsoniter.ObjectValue {
			groupIter.ReportError("DecodeTable", "group value is not an object")

			return false
		}

		group := Group{Key: groupKey}

		groupIter.ReadObjectCB(func(leafIter *jsoniter.Iterator, leafKey string) bool {
			if leafIter.WhatIsNext() != jsoniter.NumberValue {
				leafIter.ReportError("DecodeTable", "leaf count is not a number")

				return false
			}

			count := leafIter.ReadInt64()
			if count < 0 {
				leafIter.ReportError("DecodeTable", "leaf count is negative")

				return false
			}

			group.Leaves = append(group.Leaves, Leaf{Key: leafKey, Count: count})

			return leafIter.Error == nil
		})

		table = append(table, group)

		return groupIter.Error == nil
	})

	if iter.Error != nil {
		return nil, fmt.Errorf("%w: %v", jsonio.ErrSchema, iter.Error)
	}

	return table, nil
}

// GrandTotal sums every leaf count in the raw table, before any filtering.
func (t Table) GrandTotal() int64 {
	var total int64

	for _, group := range t {
		for _, leaf := range group.Leaves {
			total += leaf.Count
		}
	}

	return total
}

package snapshot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDocument(t *testing.T, raw string) Document {
	t.Helper()

	doc, err := DecodeDocument([]byte(raw))
	require.NoError(t, err)

	return doc
}

func TestFilterStatus(t *testing.T) {
	t.Parallel()

	t.Run("removes_matching_records", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `{
			"a": {"status": "Loaded", "balance": 1},
			"b": {"status": "Dirty", "balance": 2},
			"c": {"balance": 3}
		}`)

		filtered, removed := FilterStatus(doc, "Loaded")
		assert.Equal(t, 1, removed)
		assert.Len(t, filtered, 2)
		assert.NotContains(t, filtered, "a")
	})

	t.Run("non_object_records_kept", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `{"a": "Loaded", "b": 7}`)

		filtered, removed := FilterStatus(doc, "Loaded")
		assert.Zero(t, removed)
		assert.Len(t, filtered, 2)
	})

	t.Run("status_must_be_string", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `{"a": {"status": 1}}`)

		filtered, removed := FilterStatus(doc, "1")
		assert.Zero(t, removed)
		assert.Len(t, filtered, 1)
	})

	t.Run("input_not_mutated", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `{"a": {"status": "Loaded"}}`)

		_, removed := FilterStatus(doc, "Loaded")
		assert.Equal(t, 1, removed)
		assert.Len(t, doc, 1)
	})
}

func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("identical_documents", func(t *testing.T) {
		t.Parallel()

		left := mustDocument(t, `{"a": {"balance": 1}, "b": [1, 2]}`)
		right := mustDocument(t, `{"a": {"balance": 1}, "b": [1, 2]}`)

		report := Compare(left, right)
		assert.True(t, report.Identical())
		assert.Zero(t, report.TotalDifferences())
		assert.Equal(t, 2, report.CommonCount)
	})

	t.Run("categories_are_disjoint", func(t *testing.T) {
		t.Parallel()

		left := mustDocument(t, `{
			"only_left": {"x": 1},
			"changed": {"balance": 1},
			"same": {"y": 2}
		}`)
		right := mustDocument(t, `{
			"only_right": {"x": 1},
			"changed": {"balance": 2},
			"same": {"y": 2}
		}`)

		report := Compare(left, right)
		assert.Equal(t, []string{"only_left"}, report.OnlyLeft)
		assert.Equal(t, []string{"only_right"}, report.OnlyRight)
		assert.Equal(t, []string{"changed"}, report.ChangedIDs)
		assert.Equal(t, 3, report.TotalDifferences())
		assert.Equal(t, 2, report.CommonCount)
		assert.False(t, report.Identical())
	})

	t.Run("type_mismatch_is_terminal", func(t *testing.T) {
		t.Parallel()

		left := mustDocument(t, `{"a": {"balance": 1, "extra": true}}`)
		right := mustDocument(t, `{"a": [1, true]}`)

		report := Compare(left, right)
		entries := report.Changed["a"]
		require.Len(t, entries, 1)
		assert.Equal(t, TypeMismatch, entries[0].Kind)
		assert.Equal(t, "object", entries[0].LeftType)
		assert.Equal(t, "array", entries[0].RightType)
	})

	t.Run("object_fields_compared_one_level", func(t *testing.T) {
		t.Parallel()

		left := mustDocument(t, `{"a": {
			"gone": 1,
			"kept": {"deep": [1, 2]},
			"changed": {"deep": [1, 2]}
		}}`)
		right := mustDocument(t, `{"a": {
			"added": 2,
			"kept": {"deep": [1, 2]},
			"changed": {"deep": [2, 1]}
		}}`)

		report := Compare(left, right)
		entries := report.Changed["a"]
		require.Len(t, entries, 3)

		assert.Equal(t, KeyOnlyInLeft, entries[0].Kind)
		assert.Equal(t, "gone", entries[0].Key)
		assert.Equal(t, KeyOnlyInRight, entries[1].Kind)
		assert.Equal(t, "added", entries[1].Key)
		assert.Equal(t, FieldDiffers, entries[2].Kind)
		assert.Equal(t, "changed", entries[2].Key)
	})

	t.Run("scalar_records", func(t *testing.T) {
		t.Parallel()

		left := mustDocument(t, `{"a": "0xabc"}`)
		right := mustDocument(t, `{"a": "0xdef"}`)

		report := Compare(left, right)
		entries := report.Changed["a"]
		require.Len(t, entries, 1)
		assert.Equal(t, ScalarDiffers, entries[0].Kind)
		assert.Equal(t, "0xabc", entries[0].Left.Str)
		assert.Equal(t, "0xdef", entries[0].Right.Str)
	})

	t.Run("swapped_inputs_mirror_categories", func(t *testing.T) {
		t.Parallel()

		left := mustDocument(t, `{"l": 1, "both": {"x": 1}}`)
		right := mustDocument(t, `{"r": 2, "both": {"x": 2}}`)

		forward := Compare(left, right)
		backward := Compare(right, left)

		assert.Empty(t, cmp.Diff(forward.OnlyLeft, backward.OnlyRight))
		assert.Empty(t, cmp.Diff(forward.OnlyRight, backward.OnlyLeft))
		assert.Empty(t, cmp.Diff(forward.ChangedIDs, backward.ChangedIDs))
		assert.Equal(t, forward.TotalDifferences(), backward.TotalDifferences())
	})

	t.Run("filter_can_empty_both_sides", func(t *testing.T) {
		t.Parallel()

		left := mustDocument(t, `{"a": {"status": "Loaded", "balance": 1}}`)
		right := mustDocument(t, `{"a": {"status": "Loaded", "balance": 2}}`)

		filteredLeft, removedLeft := FilterStatus(left, "Loaded")
		filteredRight, removedRight := FilterStatus(right, "Loaded")
		assert.Equal(t, 1, removedLeft)
		assert.Equal(t, 1, removedRight)

		report := Compare(filteredLeft, filteredRight)
		assert.True(t, report.Identical())
		assert.Zero(t, report.LeftCount)
		assert.Zero(t, report.RightCount)
	})
}

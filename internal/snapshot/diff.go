package snapshot

import "sort"

// statusField is the record attribute inspected by the exclusion filter.
const statusField = "status"

// FilterStatus returns a copy of doc without the records whose value is an
// object carrying status == skip. Removed records never appear in any diff
// category. The returned count is the number of removed records.
func FilterStatus(doc Document, skip string) (Document, int) {
	filtered := make(Document, len(doc))
	removed := 0

	for id, value := range doc {
		if value.Kind == KindObject {
			status, present := value.Obj[statusField]
			if present && status.Kind == KindString && status.Str == skip {
				removed++

				continue
			}
		}

		filtered[id] = value
	}

	return filtered, removed
}

// EntryKind enumerates the difference categories of one changed record.
type EntryKind uint8

// Difference categories.
const (
	// TypeMismatch terminates comparison of a record: no deeper
	// comparison is attempted once the two sides disagree on shape.
	TypeMismatch EntryKind = iota
	// KeyOnlyInLeft marks a field present only in the left record.
	KeyOnlyInLeft
	// KeyOnlyInRight marks a field present only in the right record.
	KeyOnlyInRight
	// FieldDiffers marks a field present in both records with unequal values.
	FieldDiffers
	// ScalarDiffers marks two non-object records with unequal values.
	ScalarDiffers
)

// Entry is one emitted difference for a changed record.
type Entry struct {
	Kind EntryKind
	// Key is the field name for KeyOnlyInLeft, KeyOnlyInRight and FieldDiffers.
	Key string
	// LeftType and RightType are set for TypeMismatch.
	LeftType  string
	RightType string
	// Left and Right are set for FieldDiffers and ScalarDiffers.
	Left  Value
	Right Value
	// Orphan is the value of a KeyOnlyInLeft/KeyOnlyInRight field.
	Orphan Value
}

// Report is the categorized comparison result. A record id appears in at
// most one of OnlyLeft, OnlyRight, and Changed; records equal after
// filtering appear nowhere.
type Report struct {
	// OnlyLeft and OnlyRight hold record ids sorted lexicographically.
	OnlyLeft  []string
	OnlyRight []string
	// ChangedIDs holds the keys of Changed sorted lexicographically.
	ChangedIDs []string
	Changed    map[string][]Entry
	// LeftCount and RightCount are the filtered document sizes.
	LeftCount  int
	RightCount int
	// CommonCount is the number of ids present in both documents.
	CommonCount int
}

// TotalDifferences is the number of records in any difference category.
func (r Report) TotalDifferences() int {
	return len(r.OnlyLeft) + len(r.OnlyRight) + len(r.ChangedIDs)
}

// Identical reports whether the two filtered documents carried no
// differences at all.
func (r Report) Identical() bool {
	return r.TotalDifferences() == 0
}

// Compare computes the full difference report for two filtered documents.
func Compare(left, right Document) Report {
	report := Report{
		Changed:    make(map[string][]Entry),
		LeftCount:  len(left),
		RightCount: len(right),
	}

	for id := range left {
		if _, present := right[id]; !present {
			report.OnlyLeft = append(report.OnlyLeft, id)
		}
	}

	for id := range right {
		if _, present := left[id]; !present {
			report.OnlyRight = append(report.OnlyRight, id)
		}
	}

	sort.Strings(report.OnlyLeft)
	sort.Strings(report.OnlyRight)

	for id, leftValue := range left {
		rightValue, present := right[id]
		if !present {
			continue
		}

		report.CommonCount++

		entries := compareValues(leftValue, rightValue)
		if len(entries) > 0 {
			report.Changed[id] = entries
			report.ChangedIDs = append(report.ChangedIDs, id)
		}
	}

	sort.Strings(report.ChangedIDs)

	return report
}

// compareValues performs the type-aware comparison of one record pair.
// Object values are compared one nesting level deep; everything below that
// is judged by deep equality only.
func compareValues(left, right Value) []Entry {
	if left.Kind != right.Kind {
		return []Entry{{
			Kind:      TypeMismatch,
			LeftType:  left.Kind.TypeName(),
			RightType: right.Kind.TypeName(),
		}}
	}

	if left.Kind == KindObject {
		return compareObjects(left, right)
	}

	if !Equal(left, right) {
		return []Entry{{Kind: ScalarDiffers, Left: left, Right: right}}
	}

	return nil
}

func compareObjects(left, right Value) []Entry {
	var entries []Entry

	for _, key := range left.SortedKeys() {
		if _, present := right.Obj[key]; !present {
			entries = append(entries, Entry{Kind: KeyOnlyInLeft, Key: key, Orphan: left.Obj[key]})
		}
	}

	for _, key := range right.SortedKeys() {
		if _, present := left.Obj[key]; !present {
			entries = append(entries, Entry{Kind: KeyOnlyInRight, Key: key, Orphan: right.Obj[key]})
		}
	}

	for _, key := range left.SortedKeys() {
		rightField, present := right.Obj[key]
		if !present {
			continue
		}

		leftField := left.Obj[key]
		if !Equal(leftField, rightField) {
			entries = append(entries, Entry{Kind: FieldDiffers, Key: key, Left: leftField, Right: rightField})
		}
	}

	return entries
}

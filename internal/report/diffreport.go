package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/execlens/execlens/internal/snapshot"
)

// inlineDiffMinChars is the smallest string scalar for which a
// character-level diff is rendered instead of plain side-by-side values.
const inlineDiffMinChars = 32

// DiffReport binds a comparison result to its inputs for rendering. Labels
// identify the two snapshots (by convention the execution strategies that
// produced them).
type DiffReport struct {
	LeftLabel  string
	RightLabel string
	Left       snapshot.Document
	Right      snapshot.Document
	Result     snapshot.Report
	// MaxInlineChars bounds verbatim payload embedding per the
	// truncation policy.
	MaxInlineChars int
}

// Render writes the full categorized comparison report.
func (d *DiffReport) Render(out *Renderer) {
	out.Section("COMPARISON RESULTS")

	out.Println()
	out.Println("Summary Statistics:")
	out.Table(table.Row{"", "Count"}, []table.Row{
		{fmt.Sprintf("Total accounts in %s", d.LeftLabel), d.Result.LeftCount},
		{fmt.Sprintf("Total accounts in %s", d.RightLabel), d.Result.RightCount},
		{"Common accounts", d.Result.CommonCount},
		{fmt.Sprintf("Only in %s", d.LeftLabel), len(d.Result.OnlyLeft)},
		{fmt.Sprintf("Only in %s", d.RightLabel), len(d.Result.OnlyRight)},
		{"Different values", len(d.Result.ChangedIDs)},
	})

	d.renderOnly(out, d.LeftLabel, d.Result.OnlyLeft, d.Left)
	d.renderOnly(out, d.RightLabel, d.Result.OnlyRight, d.Right)
	d.renderChanged(out)
	d.renderFinalSummary(out)
}

func (d *DiffReport) renderOnly(out *Renderer, label string, ids []string, doc snapshot.Document) {
	if len(ids) == 0 {
		return
	}

	out.Section(fmt.Sprintf("ACCOUNTS ONLY IN %s (%d)", strings.ToUpper(label), len(ids)))

	for _, id := range ids {
		out.Println()
		out.Printf("%s:", id)
		d.renderPayload(out, "  ", doc[id])
	}
}

func (d *DiffReport) renderChanged(out *Renderer) {
	if len(d.Result.ChangedIDs) == 0 {
		return
	}

	out.Section(fmt.Sprintf("ACCOUNTS WITH DIFFERENT VALUES (%d)", len(d.Result.ChangedIDs)))

	for _, id := range d.Result.ChangedIDs {
		out.Println()
		out.Printf("%s:", id)

		for _, entry := range d.Result.Changed[id] {
			d.renderEntry(out, entry)
		}
	}
}

func (d *DiffReport) renderEntry(out *Renderer, entry snapshot.Entry) {
	switch entry.Kind {
	case snapshot.TypeMismatch:
		out.Printf("  Type mismatch: %s vs %s", entry.LeftType, entry.RightType)
	case snapshot.KeyOnlyInLeft:
		out.Printf("  Key only in %s: %s", d.LeftLabel, entry.Key)
		d.renderPayload(out, "    ", entry.Orphan)
	case snapshot.KeyOnlyInRight:
		out.Printf("  Key only in %s: %s", d.RightLabel, entry.Key)
		d.renderPayload(out, "    ", entry.Orphan)
	case snapshot.FieldDiffers:
		out.Printf("  Field '%s' differs:", entry.Key)
		d.renderSides(out, "    ", entry.Left, entry.Right)
	case snapshot.ScalarDiffers:
		d.renderSides(out, "  ", entry.Left, entry.Right)
	}
}

// renderSides prints the two sides of an unequal value pair, with a
// character-level diff for long string scalars.
func (d *DiffReport) renderSides(out *Renderer, indent string, left, right snapshot.Value) {
	leftPayload := snapshot.Summarize(left, d.MaxInlineChars)
	rightPayload := snapshot.Summarize(right, d.MaxInlineChars)

	out.Printf("%s%s: %s", indent, d.LeftLabel, payloadLine(leftPayload))
	out.Printf("%s%s: %s", indent, d.RightLabel, payloadLine(rightPayload))

	if d.stringDiffWorthwhile(left, right) && !out.NoColor() {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(left.Str, right.Str, false)

		out.Printf("%sDiff: %s", indent, dmp.DiffPrettyText(diffs))
	}
}

func (d *DiffReport) stringDiffWorthwhile(left, right snapshot.Value) bool {
	if left.Kind != snapshot.KindString || right.Kind != snapshot.KindString {
		return false
	}

	longest := max(len(left.Str), len(right.Str))

	return longest >= inlineDiffMinChars && longest < d.MaxInlineChars
}

func (d *DiffReport) renderPayload(out *Renderer, indent string, value snapshot.Value) {
	payload := snapshot.Summarize(value, d.MaxInlineChars)
	if !payload.Truncated {
		out.Printf("%sData: %s", indent, payload.Inline)

		return
	}

	out.Printf("%sData: (too large, %d chars)", indent, payload.Chars)

	if len(payload.Keys) > 0 {
		out.Printf("%sKeys: %v", indent, payload.Keys)

		for _, field := range payload.Fields {
			out.Printf("%s  %s: %s", indent, field.Key, field.Desc)
		}
	}
}

func (d *DiffReport) renderFinalSummary(out *Renderer) {
	out.Section("FINAL SUMMARY")

	total := d.Result.TotalDifferences()

	out.Printf("Total accounts with differences: %d", total)
	out.Printf("  - Only in %s:  %d", d.LeftLabel, len(d.Result.OnlyLeft))
	out.Printf("  - Only in %s:  %d", d.RightLabel, len(d.Result.OnlyRight))
	out.Printf("  - Different values:  %d", len(d.Result.ChangedIDs))
	out.Println()

	if d.Result.Identical() {
		out.Good("The two snapshots are IDENTICAL!")
	} else {
		out.Bad("The two snapshots have DIFFERENCES in %d accounts.", total)
	}
}

// payloadLine flattens a Payload to one line for side-by-side display.
func payloadLine(payload snapshot.Payload) string {
	if !payload.Truncated {
		return payload.Inline
	}

	return fmt.Sprintf("(too large, %d chars)", payload.Chars)
}

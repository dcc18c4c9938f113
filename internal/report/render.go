// Package report renders the analysis results for the terminal and builds
// the JSON artifacts persisted next to the inputs.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// sectionWidth is the width of section separator rules.
const sectionWidth = 80

// Renderer writes formatted report sections to one output.
type Renderer struct {
	out     io.Writer
	header  *color.Color
	good    *color.Color
	bad     *color.Color
	noColor bool
}

// NewRenderer creates a Renderer. Color is disabled when noColor is set
// (the NO_COLOR environment variable is honored by the color package).
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	r := &Renderer{
		out:     out,
		header:  color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen, color.Bold),
		bad:     color.New(color.FgRed, color.Bold),
		noColor: noColor,
	}

	if noColor {
		r.header.DisableColor()
		r.good.DisableColor()
		r.bad.DisableColor()
	}

	return r
}

// NoColor reports whether colored output is disabled.
func (r *Renderer) NoColor() bool {
	return r.noColor
}

// Section prints a separator-framed section title.
func (r *Renderer) Section(title string) {
	rule := strings.Repeat("=", sectionWidth)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	r.header.Fprintln(r.out, title)
	fmt.Fprintln(r.out, rule)
}

// Printf writes a formatted line.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Println writes args as one line.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Good writes a line in the success color.
func (r *Renderer) Good(format string, args ...any) {
	r.good.Fprintf(r.out, format+"\n", args...)
}

// Bad writes a line in the failure color.
func (r *Renderer) Bad(format string, args ...any) {
	r.bad.Fprintf(r.out, format+"\n", args...)
}

// Table renders rows as a borderless go-pretty table.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(r.out)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	tbl.AppendHeader(header)
	tbl.AppendRows(rows)
	tbl.Render()
}

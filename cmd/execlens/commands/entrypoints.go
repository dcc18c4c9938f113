// Package commands implements the execlens CLI subcommands.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/execlens/execlens/internal/config"
	"github.com/execlens/execlens/internal/freq"
	"github.com/execlens/execlens/internal/jsonio"
	"github.com/execlens/execlens/internal/report"
)

// DefaultStatisticsPath is the conventional location of the frequency table
// dump relative to the working directory.
const DefaultStatisticsPath = "ssa_cache/statistics.json"

// defaultTopDisplay bounds the per-group detail shown on the terminal.
const defaultTopDisplay = 20

// EntrypointsCommand holds the flags for the entrypoints command.
type EntrypointsCommand struct {
	topDisplay int
	noColor    bool
	plotPath   string
	configPath string
}

// NewEntrypointsCommand creates and configures the entrypoints command.
func NewEntrypointsCommand() *cobra.Command {
	cmd := &EntrypointsCommand{}

	cobraCmd := &cobra.Command{
		Use:   "entrypoints [statistics.json]",
		Short: "Rank entrypoints by total path frequency and locate coverage thresholds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().IntVarP(&cmd.topDisplay, "top", "t", defaultTopDisplay, "Number of entrypoints to show in detail")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().StringVar(&cmd.plotPath, "plot", "", "Write an HTML bar chart of the top totals to this file")
	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file path")

	return cobraCmd
}

// Run executes the entrypoints command.
func (c *EntrypointsCommand) Run(cobraCmd *cobra.Command, args []string) error {
	input := DefaultStatisticsPath
	if len(args) > 0 {
		input = args[0]
	}

	out := cobraCmd.OutOrStdout()

	cfg, cfgErr := config.Load(c.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	freqTable, loadErr := loadTable(out, input)
	if loadErr != nil {
		return loadErr
	}

	opts := freq.NewOptions(cfg.Analysis.ExcludeEntrypoints, cfg.Analysis.ExcludePathHashes)
	agg := freq.Aggregate(freqTable, opts)
	ranked := freq.RankGroups(agg.Groups)

	thresholds, scanErr := freq.Scan(ranked, func(g freq.GroupTotal) int64 { return g.Total }, cfg.Analysis.Thresholds)
	if scanErr != nil {
		return scanErr
	}

	rep := &report.EntrypointReport{
		Input:      input,
		Agg:        agg,
		Ranked:     ranked,
		Thresholds: thresholds,
		Total:      agg.TotalFrequency(),
		TopEntries: cfg.Analysis.TopEntries,
	}

	renderer := report.NewRenderer(out, c.noColor)
	rep.Render(renderer, c.topDisplay)

	writeErr := jsonio.WriteArtifact(rep.ArtifactPath(), rep.Artifact())
	if writeErr != nil {
		return writeErr
	}

	renderer.Section("Detailed analysis saved to: " + rep.ArtifactPath())

	if c.plotPath != "" {
		return writeGroupPlot(c.plotPath, ranked, c.topDisplay)
	}

	return nil
}

func loadTable(out io.Writer, input string) (freq.Table, error) {
	fmt.Fprintf(out, "Loading data from %s...\n", input)

	data, readErr := jsonio.ReadDocument(input)
	if readErr != nil {
		return nil, readErr
	}

	return freq.DecodeTable(data)
}

func writeGroupPlot(path string, ranked []freq.GroupTotal, topDisplay int) error {
	count := min(topDisplay, len(ranked))
	labels := make([]string, 0, count)
	values := make([]int64, 0, count)

	for _, group := range ranked[:count] {
		labels = append(labels, report.DisplayEntrypoint(group.Key))
		values = append(values, group.Total)
	}

	return report.WriteBarChart(path, "Entrypoint Frequency Distribution", "Frequency", labels, values)
}

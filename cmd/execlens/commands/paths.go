package commands

import (
	"github.com/spf13/cobra"

	"github.com/execlens/execlens/internal/config"
	"github.com/execlens/execlens/internal/freq"
	"github.com/execlens/execlens/internal/jsonio"
	"github.com/execlens/execlens/internal/report"
)

// PathsCommand holds the flags for the paths command.
type PathsCommand struct {
	topDisplay int
	noColor    bool
	plotPath   string
	configPath string
}

// NewPathsCommand creates and configures the paths command.
func NewPathsCommand() *cobra.Command {
	cmd := &PathsCommand{}

	cobraCmd := &cobra.Command{
		Use:   "paths [statistics.json]",
		Short: "Rank path hashes by frequency across all entrypoints",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().IntVarP(&cmd.topDisplay, "top", "t", defaultTopDisplay, "Number of path hashes to show in detail")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().StringVar(&cmd.plotPath, "plot", "", "Write an HTML bar chart of the top frequencies to this file")
	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file path")

	return cobraCmd
}

// Run executes the paths command.
func (c *PathsCommand) Run(cobraCmd *cobra.Command, args []string) error {
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

	// The paths view never excludes whole entrypoints; only the leaf
	// exclusion set applies before flattening.
	opts := freq.NewOptions(nil, cfg.Analysis.ExcludePathHashes)
	agg := freq.Flatten(freqTable, opts)
	ranked := freq.RankFlat(agg.Entries)

	thresholds, scanErr := freq.Scan(ranked, func(e freq.FlatEntry) int64 { return e.Count }, cfg.Analysis.Thresholds)
	if scanErr != nil {
		return scanErr
	}

	rep := &report.PathReport{
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
		return writeFlatPlot(c.plotPath, ranked, c.topDisplay)
	}

	return nil
}

func writeFlatPlot(path string, ranked []freq.FlatEntry, topDisplay int) error {
	count := min(topDisplay, len(ranked))
	labels := make([]string, 0, count)
	values := make([]int64, 0, count)

	for _, entry := range ranked[:count] {
		labels = append(labels, entry.Key)
		values = append(values, entry.Count)
	}

	return report.WriteBarChart(path, "Path Hash Frequency Distribution", "Frequency", labels, values)
}

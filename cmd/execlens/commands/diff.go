package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/execlens/execlens/internal/config"
	"github.com/execlens/execlens/internal/jsonio"
	"github.com/execlens/execlens/internal/report"
	"github.com/execlens/execlens/internal/snapshot"
)

// Conventional snapshot filenames, one per execution strategy.
const (
	DefaultLeftSnapshot  = "state_cache_sequential.json"
	DefaultRightSnapshot = "state_cache_parallel.json"
)

// snapshotPrefix is stripped from filenames when deriving section labels.
const snapshotPrefix = "state_cache_"

// DiffCommand holds the flags for the diff command.
type DiffCommand struct {
	noColor    bool
	configPath string
}

// NewDiffCommand creates and configures the diff command.
func NewDiffCommand() *cobra.Command {
	cmd := &DiffCommand{}

	cobraCmd := &cobra.Command{
		Use:   "diff [left.json [right.json]]",
		Short: "Compare two account-state snapshots and report differences",
		Args:  cobra.RangeArgs(0, 2),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file path")

	return cobraCmd
}

// Run executes the diff command.
func (c *DiffCommand) Run(cobraCmd *cobra.Command, args []string) error {
	leftPath, rightPath := DefaultLeftSnapshot, DefaultRightSnapshot
	if len(args) >= 1 {
		leftPath = args[0]
	}

	if len(args) == 2 {
		rightPath = args[1]
	}

	out := cobraCmd.OutOrStdout()

	cfg, cfgErr := config.Load(c.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	left, leftErr := loadSnapshot(out, leftPath)
	if leftErr != nil {
		return leftErr
	}

	right, rightErr := loadSnapshot(out, rightPath)
	if rightErr != nil {
		return rightErr
	}

	fmt.Fprintf(out, "\nFiltering accounts with status '%s'...\n", cfg.Diff.SkipStatus)

	left, leftRemoved := snapshot.FilterStatus(left, cfg.Diff.SkipStatus)
	right, rightRemoved := snapshot.FilterStatus(right, cfg.Diff.SkipStatus)

	if leftRemoved > 0 || rightRemoved > 0 {
		fmt.Fprintf(out, "  Filtered out %d + %d accounts\n", leftRemoved, rightRemoved)
	}

	rep := &report.DiffReport{
		LeftLabel:      snapshotLabel(leftPath),
		RightLabel:     snapshotLabel(rightPath),
		Left:           left,
		Right:          right,
		Result:         snapshot.Compare(left, right),
		MaxInlineChars: cfg.Diff.MaxInlineChars,
	}

	rep.Render(report.NewRenderer(out, c.noColor))

	return nil
}

func loadSnapshot(out io.Writer, path string) (snapshot.Document, error) {
	fmt.Fprintf(out, "Loading %s...\n", path)

	data, readErr := jsonio.ReadDocument(path)
	if readErr != nil {
		return nil, readErr
	}

	doc, decodeErr := snapshot.DecodeDocument(data)
	if decodeErr != nil {
		return nil, decodeErr
	}

	fmt.Fprintf(out, "  Loaded %d entries\n", len(doc))

	return doc, nil
}

// snapshotLabel derives a short section label from a snapshot filename:
// "state_cache_sequential.json" becomes "sequential".
func snapshotLabel(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".lz4")
	name = strings.TrimSuffix(name, ".json")
	name = strings.TrimPrefix(name, snapshotPrefix)

	if name == "" {
		return filepath.Base(path)
	}

	return name
}

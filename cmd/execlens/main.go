// Package main provides the entry point for the execlens CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/execlens/execlens/cmd/execlens/commands"
	"github.com/execlens/execlens/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "execlens",
		Short: "Execlens - offline analysis of execution instrumentation dumps",
		Long: `Execlens analyzes precomputed execution instrumentation dumps.

Commands:
  entrypoints  Pareto analysis of path frequencies grouped by entrypoint
  paths        Pareto analysis of path-hash frequencies across all entrypoints
  diff         Compare two account-state snapshots`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewEntrypointsCommand())
	rootCmd.AddCommand(commands.NewPathsCommand())
	rootCmd.AddCommand(commands.NewDiffCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "execlens %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

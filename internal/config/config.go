// Package config holds the static run configuration for execlens.
// Exclusion sets, Pareto thresholds, and diff display limits are explicit
// configuration rather than process-wide globals so runs stay reproducible.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidThreshold is returned when a Pareto threshold is outside (0, 1].
var ErrInvalidThreshold = errors.New("pareto threshold out of range (0, 1]")

// ErrInvalidInlineLimit is returned when the diff inline size limit is not positive.
var ErrInvalidInlineLimit = errors.New("max_inline_chars must be positive")

// Config is the top-level configuration struct for execlens.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Diff     DiffConfig     `mapstructure:"diff"`
}

// AnalysisConfig holds frequency-analysis settings.
type AnalysisConfig struct {
	// Thresholds are the cumulative-coverage fractions located by the
	// Pareto scan, each in (0, 1].
	Thresholds []float64 `mapstructure:"thresholds"`
	// TopEntries bounds the detail listing in the JSON artifact.
	TopEntries int `mapstructure:"top_entries"`
	// ExcludeEntrypoints are entrypoint keys dropped wholesale.
	ExcludeEntrypoints []string `mapstructure:"exclude_entrypoints"`
	// ExcludePathHashes are path hashes dropped from every entrypoint.
	ExcludePathHashes []string `mapstructure:"exclude_path_hashes"`
}

// DiffConfig holds snapshot comparison settings.
type DiffConfig struct {
	// SkipStatus removes records whose status field equals this value
	// from both snapshots before any comparison.
	SkipStatus string `mapstructure:"skip_status"`
	// MaxInlineChars bounds how large a serialized payload may be before
	// the diff report summarizes it instead of embedding it verbatim.
	MaxInlineChars int `mapstructure:"max_inline_chars"`
}

// Default configuration values. The exclusion defaults name the pure-transfer
// entrypoint and its path hash, which dominate the dumps without carrying any
// path information.
const (
	DefaultTopEntries     = 100
	DefaultSkipStatus     = "Loaded"
	DefaultMaxInlineChars = 2000

	pureTransferEntrypoint = "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470_NONE_Transfer"
	pureTransferPathHash   = "cbf29ce484222325"
)

// DefaultThresholds returns the canonical Pareto threshold set.
func DefaultThresholds() []float64 {
	return []float64{0.5, 0.8, 0.9, 0.95, 0.99}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			Thresholds:         DefaultThresholds(),
			TopEntries:         DefaultTopEntries,
			ExcludeEntrypoints: []string{pureTransferEntrypoint},
			ExcludePathHashes:  []string{pureTransferPathHash},
		},
		Diff: DiffConfig{
			SkipStatus:     DefaultSkipStatus,
			MaxInlineChars: DefaultMaxInlineChars,
		},
	}
}

// Validate rejects configurations the engines cannot honor.
func (c *Config) Validate() error {
	for _, threshold := range c.Analysis.Thresholds {
		if threshold <= 0 || threshold > 1 {
			return fmt.Errorf("%w: %g", ErrInvalidThreshold, threshold)
		}
	}

	if c.Diff.MaxInlineChars <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInlineLimit, c.Diff.MaxInlineChars)
	}

	return nil
}

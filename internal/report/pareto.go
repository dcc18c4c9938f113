package report

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/execlens/execlens/internal/freq"
	"github.com/execlens/execlens/pkg/stats"
)

// Artifact filenames, written as siblings of the analyzed input.
const (
	EntrypointArtifactName = "entrypoint_distribution_analysis.json"
	PathArtifactName       = "path_hash_pareto_analysis.json"
)

// Display bounds.
const (
	topLeavesPerGroup  = 5
	histogramMaxValues = 20
)

// Entrypoint key display abbreviation bounds.
const (
	contractDisplayMax   = 12
	contractPrefixLen    = 8
	contractSuffixLen    = 4
	entrypointKeyParts   = 3
	entrypointDisplayMax = 60
)

// thresholdJSON is the artifact form of one crossed Pareto threshold.
type thresholdJSON struct {
	Count    int     `json:"count"`
	CountPct float64 `json:"count_pct"`
	Freq     int64   `json:"freq"`
	FreqPct  float64 `json:"freq_pct"`
}

func thresholdMap(thresholds []freq.Threshold) map[string]thresholdJSON {
	result := make(map[string]thresholdJSON, len(thresholds))

	for _, th := range thresholds {
		key := strconv.FormatFloat(th.Fraction, 'g', -1, 64)
		result[key] = thresholdJSON{
			Count:    th.Entries,
			CountPct: th.EntriesPct,
			Freq:     th.CumulativeTotal,
			FreqPct:  th.CumulativePct,
		}
	}

	return result
}

// pathFreqJSON is one (path hash, frequency) pair in an artifact.
type pathFreqJSON struct {
	PathHash  string `json:"path_hash"`
	Frequency int64  `json:"frequency"`
}

// EntrypointReport is the by-entrypoint analysis, ready for rendering and
// persistence.
type EntrypointReport struct {
	Input      string
	Agg        freq.Aggregation
	Ranked     []freq.GroupTotal
	Thresholds []freq.Threshold
	Total      int64
	TopEntries int
}

// ArtifactPath returns the sibling JSON artifact location.
func (r *EntrypointReport) ArtifactPath() string {
	return filepath.Join(filepath.Dir(r.Input), EntrypointArtifactName)
}

type entrypointSummaryJSON struct {
	TotalEntrypoints       int     `json:"total_entrypoints"`
	ExcludedEntrypoints    int     `json:"excluded_entrypoints"`
	ExcludedPathHashOccurs int64   `json:"excluded_path_hashes_occurrences"`
	TotalFrequency         int64   `json:"total_frequency"`
	AverageFrequency       float64 `json:"average_frequency_per_entrypoint"`
}

type entrypointDetailJSON struct {
	Entrypoint     string         `json:"entrypoint"`
	TotalFrequency int64          `json:"total_frequency"`
	UniquePaths    int            `json:"unique_paths"`
	TopPaths       []pathFreqJSON `json:"top_5_paths"`
}

type entrypointArtifact struct {
	Summary entrypointSummaryJSON    `json:"summary"`
	Pareto  map[string]thresholdJSON `json:"pareto_analysis"`
	Top     []entrypointDetailJSON   `json:"top_100_entrypoints"`
}

// Artifact builds the JSON artifact payload.
func (r *EntrypointReport) Artifact() any {
	top := make([]entrypointDetailJSON, 0, min(r.TopEntries, len(r.Ranked)))

	for _, group := range r.Ranked[:min(r.TopEntries, len(r.Ranked))] {
		ranked := freq.RankLeaves(group.Leaves)

		paths := make([]pathFreqJSON, 0, min(topLeavesPerGroup, len(ranked)))
		for _, leaf := range ranked[:min(topLeavesPerGroup, len(ranked))] {
			paths = append(paths, pathFreqJSON{PathHash: leaf.Key, Frequency: leaf.Count})
		}

		top = append(top, entrypointDetailJSON{
			Entrypoint:     group.Key,
			TotalFrequency: group.Total,
			UniquePaths:    group.UniqueLeaves(),
			TopPaths:       paths,
		})
	}

	return entrypointArtifact{
		Summary: entrypointSummaryJSON{
			TotalEntrypoints:       len(r.Ranked),
			ExcludedEntrypoints:    r.Agg.Tally.ExcludedGroups,
			ExcludedPathHashOccurs: r.Agg.Tally.ExcludedLeafOccurrences,
			TotalFrequency:         r.Total,
			AverageFrequency:       stats.Mean(groupTotals(r.Ranked)),
		},
		Pareto: thresholdMap(r.Thresholds),
		Top:    top,
	}
}

// Render writes the textual by-entrypoint report.
func (r *EntrypointReport) Render(out *Renderer, topDisplay int) {
	out.Printf("Total entrypoints (before filtering): %d", r.Agg.Tally.RawGroups)
	out.Printf("Total entrypoints (after filtering): %d", len(r.Ranked))
	out.Printf("Excluded entrypoints: %d", r.Agg.Tally.ExcludedGroups)
	out.Printf("Excluded path_hash occurrences: %s", humanize.Comma(r.Agg.Tally.ExcludedLeafOccurrences))
	out.Printf("Total frequency (sum across all entrypoints): %s", humanize.Comma(r.Total))

	out.Section("ENTRYPOINT PARETO ANALYSIS")
	renderThresholdTable(out, r.Thresholds, "Entrypoints")

	out.Section("TOP ENTRYPOINTS WITH THEIR TOP PATH HASHES")
	r.renderTopGroups(out, topDisplay)

	out.Section("SUMMARY STATISTICS")
	renderDistribution(out, "Entrypoint Frequency", groupTotals(r.Ranked))
	renderDistribution(out, "Unique Paths per Entrypoint", uniqueLeafCounts(r.Ranked))
}

func (r *EntrypointReport) renderTopGroups(out *Renderer, topDisplay int) {
	var cumulative int64

	for rank, group := range r.Ranked[:min(topDisplay, len(r.Ranked))] {
		cumulative += group.Total
		pct := percent(group.Total, r.Total)
		cumulativePct := percent(cumulative, r.Total)

		out.Println()
		out.Printf("Rank %d: %s", rank+1, DisplayEntrypoint(group.Key))
		out.Printf("  Total Frequency: %s  (%.2f%% of total, cumulative: %.2f%%)",
			humanize.Comma(group.Total), pct, cumulativePct)
		out.Printf("  Unique Paths:    %d", group.UniqueLeaves())

		ranked := freq.RankLeaves(group.Leaves)
		rows := make([]table.Row, 0, topLeavesPerGroup+1)

		for i, leaf := range ranked[:min(topLeavesPerGroup, len(ranked))] {
			rows = append(rows, table.Row{
				i + 1, leaf.Key, humanize.Comma(leaf.Count),
				formatPct(percent(leaf.Count, group.Total)),
			})
		}

		if len(ranked) > topLeavesPerGroup {
			var remainder int64
			for _, leaf := range ranked[topLeavesPerGroup:] {
				remainder += leaf.Count
			}

			rows = append(rows, table.Row{
				"...", "(other paths)", humanize.Comma(remainder),
				formatPct(percent(remainder, group.Total)),
			})
		}

		out.Table(table.Row{"Rank", "Path Hash", "Frequency", "% of Entrypoint"}, rows)
	}
}

// PathReport is the flattened per-path-hash analysis.
type PathReport struct {
	Input      string
	Agg        freq.FlatAggregation
	Ranked     []freq.FlatEntry
	Thresholds []freq.Threshold
	Total      int64
	TopEntries int
}

// ArtifactPath returns the sibling JSON artifact location.
func (r *PathReport) ArtifactPath() string {
	return filepath.Join(filepath.Dir(r.Input), PathArtifactName)
}

type pathSummaryJSON struct {
	TotalEntrypoints    int     `json:"total_entrypoints"`
	EntrypointPathPairs int     `json:"total_entrypoint_path_pairs"`
	UniquePathHashes    int     `json:"unique_path_hashes"`
	TotalFrequency      int64   `json:"total_frequency"`
	AverageFrequency    float64 `json:"average_frequency"`
}

type pathArtifact struct {
	Summary      pathSummaryJSON          `json:"summary"`
	Pareto       map[string]thresholdJSON `json:"pareto_analysis"`
	Top          []pathFreqJSON           `json:"top_100_path_hashes"`
	Distribution map[string]int           `json:"frequency_distribution"`
}

// Artifact builds the JSON artifact payload.
func (r *PathReport) Artifact() any {
	top := make([]pathFreqJSON, 0, min(r.TopEntries, len(r.Ranked)))
	for _, entry := range r.Ranked[:min(r.TopEntries, len(r.Ranked))] {
		top = append(top, pathFreqJSON{PathHash: entry.Key, Frequency: entry.Count})
	}

	distribution := make(map[string]int)
	for _, entry := range r.Ranked {
		distribution[strconv.FormatInt(entry.Count, 10)]++
	}

	return pathArtifact{
		Summary: pathSummaryJSON{
			TotalEntrypoints:    r.Agg.Tally.RawGroups,
			EntrypointPathPairs: r.Agg.RetainedPairs,
			UniquePathHashes:    len(r.Ranked),
			TotalFrequency:      r.Total,
			AverageFrequency:    stats.Mean(flatCounts(r.Ranked)),
		},
		Pareto:       thresholdMap(r.Thresholds),
		Top:          top,
		Distribution: distribution,
	}
}

// Render writes the textual per-path-hash report.
func (r *PathReport) Render(out *Renderer, topDisplay int) {
	out.Printf("Total entrypoints: %d", r.Agg.Tally.RawGroups)

	if r.Agg.Tally.ExcludedLeafOccurrences > 0 {
		out.Println("Excluded path_hashes:")

		for _, leaf := range r.Agg.Tally.ExcludedLeaves {
			out.Printf("  - %s: excluded %s occurrences", leaf.Key, humanize.Comma(leaf.Count))
		}

		out.Printf("Total excluded frequency: %s", humanize.Comma(r.Agg.Tally.ExcludedLeafOccurrences))
	}

	out.Printf("Total entrypoint-path pairs: %d", r.Agg.RetainedPairs)
	out.Printf("Unique path_hashes: %d", len(r.Ranked))
	out.Printf("Total frequency (sum of all frequencies): %s", humanize.Comma(r.Total))
	out.Printf("Average frequency per path_hash: %.2f", stats.Mean(flatCounts(r.Ranked)))

	out.Section("PARETO ANALYSIS")
	renderThresholdTable(out, r.Thresholds, "Paths")

	out.Section("TOP PATH HASHES BY FREQUENCY")
	r.renderTopPaths(out, topDisplay)

	out.Section("DISTRIBUTION STATISTICS")
	renderDistribution(out, "Frequency", flatCounts(r.Ranked))
	r.renderHistogram(out)
}

func (r *PathReport) renderTopPaths(out *Renderer, topDisplay int) {
	var cumulative int64

	rows := make([]table.Row, 0, topDisplay)

	for i, entry := range r.Ranked[:min(topDisplay, len(r.Ranked))] {
		cumulative += entry.Count
		rows = append(rows, table.Row{
			i + 1, entry.Key, humanize.Comma(entry.Count),
			formatPct(percent(entry.Count, r.Total)),
			formatPct(percent(cumulative, r.Total)),
		})
	}

	out.Table(table.Row{"Rank", "Path Hash", "Frequency", "% of Total", "Cumulative %"}, rows)
}

// renderHistogram shows how many path hashes share each frequency value,
// lowest frequencies first, capped at histogramMaxValues distinct values.
func (r *PathReport) renderHistogram(out *Renderer) {
	byCount := make(map[int64]int)
	for _, entry := range r.Ranked {
		byCount[entry.Count]++
	}

	counts := make([]int64, 0, len(byCount))
	for count := range byCount {
		counts = append(counts, count)
	}

	slices.Sort(counts)

	out.Println()
	out.Println("Frequency Distribution:")

	rows := make([]table.Row, 0, histogramMaxValues)
	for _, count := range counts[:min(histogramMaxValues, len(counts))] {
		rows = append(rows, table.Row{
			humanize.Comma(count), byCount[count],
			formatPct(percent(int64(byCount[count]), int64(len(r.Ranked)))),
		})
	}

	out.Table(table.Row{"Frequency", "Count", "Percentage"}, rows)

	if len(counts) > histogramMaxValues {
		out.Printf("... (%d more frequency values)", len(counts)-histogramMaxValues)
	}
}

func renderThresholdTable(out *Renderer, thresholds []freq.Threshold, unit string) {
	rows := make([]table.Row, 0, len(thresholds))

	for _, th := range thresholds {
		rows = append(rows, table.Row{
			formatPct(th.Fraction * 100),
			humanize.Comma(int64(th.Entries)),
			formatPct(th.EntriesPct),
			humanize.Comma(th.CumulativeTotal),
			formatPct(th.CumulativePct),
		})
	}

	out.Table(table.Row{"Threshold", unit, "% of Total", "Cumulative Freq", "% of Total Freq"}, rows)
}

func renderDistribution(out *Renderer, label string, values []int64) {
	summary := stats.Describe(values)

	out.Println()
	out.Printf("%s Statistics:", label)
	out.Printf("  Min:    %s", humanize.Comma(summary.Min))
	out.Printf("  Max:    %s", humanize.Comma(summary.Max))
	out.Printf("  Median: %.1f", summary.Median)
	out.Printf("  Mean:   %.2f", summary.Mean)
}

// DisplayEntrypoint abbreviates a contract_selector_kind entrypoint key for
// terminal display: the contract hash keeps its first and last characters.
func DisplayEntrypoint(key string) string {
	parts := splitLastN(key, "_", entrypointKeyParts)
	if len(parts) != entrypointKeyParts {
		if len(key) > entrypointDisplayMax {
			return key[:entrypointDisplayMax]
		}

		return key
	}

	contract := parts[0]
	if len(contract) > contractDisplayMax {
		contract = contract[:contractPrefixLen] + "..." + contract[len(contract)-contractSuffixLen:]
	}

	return contract + "_" + parts[1] + "_" + parts[2]
}

// splitLastN splits s on the last n-1 occurrences of sep, mirroring a
// right-to-left split.
func splitLastN(s, sep string, n int) []string {
	parts := make([]string, 0, n)

	for len(parts) < n-1 {
		idx := strings.LastIndex(s, sep)
		if idx < 0 {
			break
		}

		parts = append([]string{s[idx+len(sep):]}, parts...)
		s = s[:idx]
	}

	return append([]string{s}, parts...)
}

func groupTotals(groups []freq.GroupTotal) []int64 {
	totals := make([]int64, len(groups))
	for i, group := range groups {
		totals[i] = group.Total
	}

	return totals
}

func uniqueLeafCounts(groups []freq.GroupTotal) []int64 {
	counts := make([]int64, len(groups))
	for i, group := range groups {
		counts[i] = int64(group.UniqueLeaves())
	}

	return counts
}

func flatCounts(entries []freq.FlatEntry) []int64 {
	counts := make([]int64, len(entries))
	for i, entry := range entries {
		counts[i] = entry.Count
	}

	return counts
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) / float64(total) * 100
}

func formatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/execlens/execlens/internal/report"
)

const statisticsFixture = `{
	"contract1_0xaaaa_Call": {
		"hash_a": 700,
		"hash_b": 200,
		"cbf29ce484222325": 5000
	},
	"contract2_0xbbbb_Call": {"hash_a": 50, "hash_c": 50},
	"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470_NONE_Transfer": {
		"cbf29ce484222325": 99999
	}
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func runCommand(t *testing.T, cobraCmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs(args)

	err := cobraCmd.Execute()

	return buf.String(), err
}

func TestEntrypointsCommand(t *testing.T) {
	input := writeFixture(t, "statistics.json", statisticsFixture)

	output, err := runCommand(t, NewEntrypointsCommand(), input, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, output, "Loading data from "+input)
	assert.Contains(t, output, "Total entrypoints (before filtering): 3")
	assert.Contains(t, output, "Total entrypoints (after filtering): 2")
	assert.Contains(t, output, "Excluded entrypoints: 1")
	assert.Contains(t, output, "Excluded path_hash occurrences: 5,000")
	assert.Contains(t, output, "Total frequency (sum across all entrypoints): 1,000")
	assert.Contains(t, output, "Rank 1: contract1_0xaaaa_Call")

	artifactPath := filepath.Join(filepath.Dir(input), report.EntrypointArtifactName)
	assert.Contains(t, output, "Detailed analysis saved to: "+artifactPath)

	data, readErr := os.ReadFile(artifactPath)
	require.NoError(t, readErr)

	var artifact map[string]any
	require.NoError(t, json.Unmarshal(data, &artifact))

	summary, ok := artifact["summary"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, summary["total_entrypoints"])
	assert.EqualValues(t, 1, summary["excluded_entrypoints"])
	assert.EqualValues(t, 1000, summary["total_frequency"])
}

func TestEntrypointsCommandMissingInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "absent.json")

	_, err := runCommand(t, NewEntrypointsCommand(), input, "--no-color")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEntrypointsCommandPlot(t *testing.T) {
	input := writeFixture(t, "statistics.json", statisticsFixture)
	plotPath := filepath.Join(filepath.Dir(input), "top.html")

	_, err := runCommand(t, NewEntrypointsCommand(), input, "--no-color", "--plot", plotPath)
	require.NoError(t, err)

	data, readErr := os.ReadFile(plotPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "echarts")
}

func TestPathsCommand(t *testing.T) {
	input := writeFixture(t, "statistics.json", statisticsFixture)

	output, err := runCommand(t, NewPathsCommand(), input, "--no-color", "--top", "2")
	require.NoError(t, err)

	// The paths view keeps every entrypoint; only the path-hash exclusion
	// applies, which removes both cbf29ce484222325 occurrences.
	assert.Contains(t, output, "Total entrypoints: 3")
	assert.Contains(t, output, "Excluded path_hashes:")
	assert.Contains(t, output, "  - cbf29ce484222325: excluded 104,999 occurrences")
	assert.Contains(t, output, "Total excluded frequency: 104,999")
	assert.Contains(t, output, "Total entrypoint-path pairs: 4")
	assert.Contains(t, output, "Unique path_hashes: 3")
	assert.Contains(t, output, "Total frequency (sum of all frequencies): 1,000")

	artifactPath := filepath.Join(filepath.Dir(input), report.PathArtifactName)

	data, readErr := os.ReadFile(artifactPath)
	require.NoError(t, readErr)

	var artifact map[string]any
	require.NoError(t, json.Unmarshal(data, &artifact))

	top, ok := artifact["top_100_path_hashes"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, top)

	first, ok := top[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hash_a", first["path_hash"])
	assert.EqualValues(t, 750, first["frequency"])
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "state_cache_sequential.json")
	rightPath := filepath.Join(dir, "state_cache_parallel.json")

	left := `{
		"skipped": {"status": "Loaded", "balance": 1},
		"same": {"balance": 10},
		"changed": {"nonce": 1}
	}`
	right := `{
		"same": {"balance": 10},
		"changed": {"nonce": 2}
	}`

	require.NoError(t, os.WriteFile(leftPath, []byte(left), 0o600))
	require.NoError(t, os.WriteFile(rightPath, []byte(right), 0o600))

	output, err := runCommand(t, NewDiffCommand(), leftPath, rightPath, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, output, "Loading "+leftPath)
	assert.Contains(t, output, "Loaded 3 entries")
	assert.Contains(t, output, "Filtering accounts with status 'Loaded'")
	assert.Contains(t, output, "Filtered out 1 + 0 accounts")
	assert.Contains(t, output, "ACCOUNTS WITH DIFFERENT VALUES (1)")
	assert.Contains(t, output, "Field 'nonce' differs:")
	assert.Contains(t, output, "sequential: 1")
	assert.Contains(t, output, "parallel: 2")
	assert.Contains(t, output, "The two snapshots have DIFFERENCES in 1 accounts.")
}

func TestDiffCommandIdentical(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.json")
	rightPath := filepath.Join(dir, "right.json")

	require.NoError(t, os.WriteFile(leftPath, []byte(`{"a": {"x": 1}}`), 0o600))
	require.NoError(t, os.WriteFile(rightPath, []byte(`{"a": {"x": 1}}`), 0o600))

	output, err := runCommand(t, NewDiffCommand(), leftPath, rightPath, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, output, "The two snapshots are IDENTICAL!")
}

func TestDiffCommandSingleArg(t *testing.T) {
	leftPath := filepath.Join(t.TempDir(), "mine.json")
	require.NoError(t, os.WriteFile(leftPath, []byte(`{"a": {"x": 1}}`), 0o600))

	// A lone argument names the left snapshot; the right side keeps its
	// default, which does not exist here.
	output, err := runCommand(t, NewDiffCommand(), leftPath, "--no-color")
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultRightSnapshot)
	assert.Contains(t, output, "Loading "+leftPath)
}

func TestDiffCommandMissingSnapshot(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.json")
	require.NoError(t, os.WriteFile(leftPath, []byte(`{}`), 0o600))

	_, err := runCommand(t, NewDiffCommand(), leftPath, filepath.Join(dir, "absent.json"), "--no-color")
	require.Error(t, err)
}

func TestSnapshotLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "conventional_name", path: "state_cache_sequential.json", want: "sequential"},
		{name: "compressed", path: "/tmp/state_cache_parallel.json.lz4", want: "parallel"},
		{name: "arbitrary_name", path: "run42.json", want: "run42"},
		{name: "prefix_only", path: "state_cache_.json", want: "state_cache_.json"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, snapshotLabel(testCase.path))
		})
	}
}

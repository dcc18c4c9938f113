package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("small_value_inlined", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `{"v": {"balance": 5}}`)

		payload := Summarize(doc["v"], 2000)
		assert.False(t, payload.Truncated)
		assert.Equal(t, `{"balance": 5}`, payload.Inline)
	})

	t.Run("large_object_summarized", func(t *testing.T) {
		t.Parallel()

		big := strings.Repeat("f", 3000)
		doc := mustDocument(t, `{"v": {"code": "`+big+`", "nonce": 7}}`)

		payload := Summarize(doc["v"], 2000)
		require.True(t, payload.Truncated)
		assert.Empty(t, payload.Inline)
		assert.Greater(t, payload.Chars, 3000)
		assert.Equal(t, []string{"code", "nonce"}, payload.Keys)

		require.Len(t, payload.Fields, 2)
		assert.Equal(t, "3000 chars", payload.Fields[0].Desc)
		assert.Equal(t, "number", payload.Fields[1].Desc)
	})

	t.Run("large_non_object_keeps_length_only", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `{"v": "`+strings.Repeat("a", 50)+`"}`)

		payload := Summarize(doc["v"], 10)
		require.True(t, payload.Truncated)
		assert.Equal(t, 52, payload.Chars)
		assert.Empty(t, payload.Keys)
		assert.Empty(t, payload.Fields)
	})

	t.Run("boundary_is_strict", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `{"v": "abc"}`)
		rendered := doc["v"].Render()

		inlined := Summarize(doc["v"], len(rendered)+1)
		assert.False(t, inlined.Truncated)

		truncated := Summarize(doc["v"], len(rendered))
		assert.True(t, truncated.Truncated)
	})
}

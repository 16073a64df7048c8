package builtin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxdoc/fluxdoc/pkg/output"
)

func TestMarkdown_SeparatesChunksWithHorizontalRule(t *testing.T) {
	ser := Markdown()
	data, err := ser(output.DocumentMeta{}, sampleChunks())
	require.NoError(t, err)

	text := string(data)
	require.Equal(t, 1, strings.Count(text, "\n---\n"))
	require.Contains(t, text, "<!-- heading_path: [Intro] | sequence: 1/2 -->")
	require.Contains(t, text, "<!-- heading_path: [Intro > Details] | sequence: 2/2 -->")
	require.Contains(t, text, "first chunk")
	require.Contains(t, text, "second chunk")
}

func TestMarkdownChunk_RendersSingleChunkWithComment(t *testing.T) {
	ser := MarkdownChunk()
	data, err := ser(output.DocumentMeta{}, sampleChunks()[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "<!-- heading_path: [Intro] | sequence: 1/2 -->")
	require.NotContains(t, string(data), "---")
}

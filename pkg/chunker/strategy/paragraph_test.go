package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	tokbuiltin "github.com/fluxdoc/fluxdoc/pkg/tokenizer/builtin"
)

func TestParagraphSpans_ReconstructOriginal(t *testing.T) {
	body := "first paragraph.\n\nsecond paragraph,\nsame block.\n\n\nthird."
	spans := paragraphSpans(body)
	var rebuilt string
	for _, s := range spans {
		rebuilt += s.Text
	}
	require.Equal(t, body, rebuilt)
	require.Len(t, spans, 3)
}

func TestParagraph_PacksAndMarksBoundaries(t *testing.T) {
	body := "alpha beta gamma.\n\ndelta epsilon zeta.\n\ntheta iota kappa."
	parsed := newParsedBody(body)
	opts := docmodel.ChunkingOptions{MaxChunkSize: 50, OverlapSize: 3, Props: docmodel.DefaultChunkingOptions().Props}

	chunks, err := Paragraph().Chunk(context.Background(), parsed, opts, tokbuiltin.NewWordCountTokenizer())
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		require.Equal(t, body[c.Start:c.End], c.Content)
		require.Equal(t, "paragraph", c.Strategy)
	}
}

func TestParagraph_Name(t *testing.T) {
	require.Equal(t, "paragraph", Paragraph().Name())
}

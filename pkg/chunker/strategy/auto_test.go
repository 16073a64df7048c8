package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	tokbuiltin "github.com/fluxdoc/fluxdoc/pkg/tokenizer/builtin"
)

func TestSelectStrategy_TableHeavyFormatPicksFixedSize(t *testing.T) {
	parsed := newParsedBody("a,b,c\n1,2,3\n")
	parsed.SourceFormat = "csv"

	d := selectStrategy(parsed)
	require.Equal(t, "fixedsize", d.strategyName)
}

func TestSelectStrategy_CodeFencePicksIntelligent(t *testing.T) {
	parsed := newParsedBody("some text\n```go\nfunc main() {}\n```\nmore text")

	d := selectStrategy(parsed)
	require.Equal(t, "intelligent", d.strategyName)
}

func TestSelectStrategy_LegalVocabularyPicksSmart(t *testing.T) {
	body := "Whereas the parties agree to the terms. The defendant shall not violate jurisdiction herein. This agreement is pursuant to law."
	parsed := newParsedBody(body)

	d := selectStrategy(parsed)
	require.Equal(t, "smart", d.strategyName)
}

func TestSelectStrategy_PlainTextFallsBackToParagraph(t *testing.T) {
	parsed := newParsedBody("Short plain text with nothing distinctive about it at all.")

	d := selectStrategy(parsed)
	require.Equal(t, "paragraph", d.strategyName)
}

func TestAuto_AnnotatesFirstChunk(t *testing.T) {
	reg := Default()
	parsed := newParsedBody("Short plain text with nothing distinctive about it at all, repeated twice over.")
	opts := docmodel.DefaultChunkingOptions()

	a, ok := reg.Get("auto")
	require.True(t, ok)

	chunks, err := a.Chunk(context.Background(), parsed, opts, tokbuiltin.NewWordCountTokenizer())
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	require.Equal(t, "paragraph", chunks[0].Props["AutoSelectedStrategy"])
}

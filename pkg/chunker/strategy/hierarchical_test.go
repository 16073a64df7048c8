package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	tokbuiltin "github.com/fluxdoc/fluxdoc/pkg/tokenizer/builtin"
)

func TestHierarchical_ChildrenLinkToParent(t *testing.T) {
	body, root := buildNestedDoc()
	parsed := docmodel.ParsedContent{Body: body, Sections: root, Language: docmodel.LanguageInfo{Code: "en"}}
	opts := docmodel.ChunkingOptions{MaxChunkSize: 3, OverlapSize: 0, Props: docmodel.DefaultChunkingOptions().Props}

	chunks, err := Hierarchical().Chunk(context.Background(), parsed, opts, tokbuiltin.NewWordCountTokenizer())
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	byID := make(map[string]docmodel.DocumentChunk)
	for _, c := range chunks {
		byID[c.ID] = c
	}

	sawChild := false
	for _, c := range chunks {
		if c.ParentID == "" {
			continue
		}
		sawChild = true
		parent, ok := byID[c.ParentID]
		require.True(t, ok, "parent chunk must exist in the same result set")
		require.Equal(t, "hierarchical", parent.Strategy)
	}
	require.True(t, sawChild, "expected at least one child chunk with a populated ParentID")
}

func TestHierarchical_Name(t *testing.T) {
	require.Equal(t, "hierarchical", Hierarchical().Name())
}

package strategy

import (
	"context"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/section"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

type hierarchical struct{}

// Hierarchical emits two tiers of chunk per section: one parent chunk
// holding the section's entire subtree verbatim (regardless of
// MaxChunkSize, so context survives retrieval at the coarse level), and a
// run of child chunks splitting just that section's own content the same
// way Intelligent would, each one linking back to its parent via ParentID.
func Hierarchical() chunker.Strategy { return hierarchical{} }

func (hierarchical) Name() string { return "hierarchical" }

func (hierarchical) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return nil, err
	}

	tree, err := tok.Tokenize(ctx, parsed.Sections)
	if err != nil {
		return nil, err
	}

	h := &hierarchyBuilder{opts: opts, root: parsed.Sections, tok: tok, cjk: isCJKLanguage(parsed.Language.Code)}
	if err := h.walk(tree, -1); err != nil {
		return nil, err
	}

	combined := chunker.StampChunks(h.chunks, contentFingerprint, optionsFingerprint)
	for i, parentPos := range h.parentOf {
		if parentPos >= 0 {
			combined[i].ParentID = combined[parentPos].ID
		}
	}
	return combined, nil
}

func (hierarchical) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	if opts.MaxChunkSize <= 0 {
		return 1
	}
	return max(1, countLeafSections(parsed.Sections)*2)
}

// hierarchyBuilder accumulates parent and child chunks across the section
// tree, recording each chunk's parent position (-1 for top-level chunks
// with no parent) so ParentID can be stamped once final IDs exist.
type hierarchyBuilder struct {
	opts     docmodel.ChunkingOptions
	root     *section.Section
	tok      tokenizer.Tokenizer
	cjk      bool
	chunks   []docmodel.DocumentChunk
	parentOf []int
}

// walk visits node and its subtree. parentPos is the index in h.chunks of
// the enclosing parent chunk, or -1 at the document root where chunks have
// no parent.
func (h *hierarchyBuilder) walk(node *tokenizer.TokenizedSection, parentPos int) error {
	if node == nil {
		return nil
	}

	sec := node.GetSection()
	nextParent := parentPos

	if !sec.IsRoot() {
		text := node.Render()
		if !isBlank(text) {
			start, end := sec.Span()
			h.chunks = append(h.chunks, docmodel.DocumentChunk{
				Content:     text,
				Start:       start,
				End:         end,
				HeadingPath: chunker.HeadingPathAt(h.root, start),
				Strategy:    "hierarchical",
				Tokens:      node.GetSubtreeTokens(),
				Props:       h.opts.Props.Clone(),
			})
			h.parentOf = append(h.parentOf, parentPos)
			nextParent = len(h.chunks) - 1
		}
	}

	if own := sec.Content(); !isBlank(own) {
		start, _ := sec.Span()
		childBuilder := chunker.NewBuilder(h.opts, "hierarchical", h.root)
		if err := splitIntoBuilder(childBuilder, h.tok, own, start, h.opts.MaxChunkSize, h.cjk); err != nil {
			return err
		}
		for _, c := range childBuilder.Chunks() {
			h.chunks = append(h.chunks, c)
			h.parentOf = append(h.parentOf, nextParent)
		}
	}

	for _, child := range node.GetChildren() {
		if err := h.walk(child, nextParent); err != nil {
			return err
		}
	}
	return nil
}

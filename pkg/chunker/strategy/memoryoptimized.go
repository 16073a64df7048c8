package strategy

import (
	"context"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

type memoryOptimizedIntelligent struct{}

// MemoryOptimizedIntelligent produces the same chunks as Intelligent but
// never holds a tokenized view of more than one top-level section's
// subtree at a time: each top-level section is tokenized, emitted, and
// discarded before the next one is tokenized, bounding peak memory to the
// largest single top-level section rather than the whole document.
func MemoryOptimizedIntelligent() chunker.Strategy { return memoryOptimizedIntelligent{} }

func (memoryOptimizedIntelligent) Name() string { return "memory_optimized_intelligent" }

func (memoryOptimizedIntelligent) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return nil, err
	}

	b := chunker.NewBuilder(opts, "memory_optimized_intelligent", parsed.Sections)
	cjk := isCJKLanguage(parsed.Language.Code)

	if own := parsed.Sections.Content(); !isBlank(own) {
		start, _ := parsed.Sections.Span()
		if err := splitIntoBuilder(b, tok, own, start, opts.MaxChunkSize, cjk); err != nil {
			return nil, err
		}
	}

	for _, top := range parsed.Sections.Children() {
		tree, err := tok.Tokenize(ctx, top)
		if err != nil {
			return nil, err
		}
		if err := emitSection(b, tok, tree, opts.MaxChunkSize, cjk); err != nil {
			return nil, err
		}
		// tree goes out of scope here; the next iteration tokenizes only its
		// own sibling rather than accumulating state across the whole tree.
	}

	return b.Finish(contentFingerprint, optionsFingerprint), nil
}

func (memoryOptimizedIntelligent) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	if opts.MaxChunkSize <= 0 {
		return 1
	}
	return max(1, countLeafSections(parsed.Sections))
}

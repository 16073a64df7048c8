package strategy

import (
	"context"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/section"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

type smart struct{}

// Smart is Intelligent's stricter sibling: rather than keeping an
// under-budget section whole (which could still end mid-sentence if a
// caller later truncates it), every section's own content is always run
// through paragraph/sentence splitting, so a chunk only ever ends at a
// physical section boundary or a real sentence end.
func Smart() chunker.Strategy { return smart{} }

func (smart) Name() string { return "smart" }

func (smart) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return nil, err
	}

	b := chunker.NewBuilder(opts, "smart", parsed.Sections)
	cjk := isCJKLanguage(parsed.Language.Code)

	if err := walkSections(parsed.Sections, func(s *section.Section) error {
		content := s.Content()
		if isBlank(content) {
			return nil
		}
		start, _ := s.Span()
		return splitIntoBuilder(b, tok, content, start, opts.MaxChunkSize, cjk)
	}); err != nil {
		return nil, err
	}

	return b.Finish(contentFingerprint, optionsFingerprint), nil
}

func (smart) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	if opts.MaxChunkSize <= 0 {
		return 1
	}
	return max(1, len(parsed.Body)/(opts.MaxChunkSize*5))
}

// walkSections visits every section in the tree, pre-order, root first.
func walkSections(s *section.Section, fn func(*section.Section) error) error {
	if s == nil {
		return nil
	}
	if err := fn(s); err != nil {
		return err
	}
	for _, c := range s.Children() {
		if err := walkSections(c, fn); err != nil {
			return err
		}
	}
	return nil
}

package strategy

import (
	"context"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/section"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

type intelligent struct{}

// Intelligent honors the parsed section tree: a section (and everything
// beneath it) smaller than MaxChunkSize becomes one chunk untouched;
// larger sections split on subsection boundaries first, paragraph
// boundaries second, sentence boundaries third.
func Intelligent() chunker.Strategy { return intelligent{} }

func (intelligent) Name() string { return "intelligent" }

func (intelligent) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return nil, err
	}

	tree, err := tok.Tokenize(ctx, parsed.Sections)
	if err != nil {
		return nil, err
	}

	b := chunker.NewBuilder(opts, "intelligent", parsed.Sections)
	cjk := isCJKLanguage(parsed.Language.Code)
	if err := emitSection(b, tok, tree, opts.MaxChunkSize, cjk); err != nil {
		return nil, err
	}

	return b.Finish(contentFingerprint, optionsFingerprint), nil
}

func (intelligent) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	if opts.MaxChunkSize <= 0 {
		return 1
	}
	return max(1, countLeafSections(parsed.Sections))
}

// emitSection walks a TokenizedSection tree: whole subtrees under budget
// become one atomic unit; oversized ones recurse into their own content
// first (paragraph/sentence split), then into each child subtree in turn.
func emitSection(b *chunker.Builder, tok tokenizer.Tokenizer, node *tokenizer.TokenizedSection, maxSize int, cjk bool) error {
	if node == nil {
		return nil
	}

	if node.GetSubtreeTokens() <= maxSize {
		text := node.Render()
		if isBlank(text) {
			return nil
		}
		sec := node.GetSection()
		start, _ := sec.Span()
		b.Add(chunker.Unit{Text: text, Start: start, End: start + len(text), Tokens: node.GetSubtreeTokens(), Boundary: true})
		return nil
	}

	sec := node.GetSection()
	start, _ := sec.Span()
	if own := sec.Content(); !isBlank(own) {
		if err := splitIntoBuilder(b, tok, own, start, maxSize, cjk); err != nil {
			return err
		}
	}

	for _, child := range node.GetChildren() {
		if err := emitSection(b, tok, child, maxSize, cjk); err != nil {
			return err
		}
	}
	return nil
}

func countLeafSections(s *section.Section) int {
	if s == nil {
		return 0
	}
	children := s.Children()
	if len(children) == 0 {
		return 1
	}
	n := 0
	for _, c := range children {
		n += countLeafSections(c)
	}
	return n
}

package strategy

import (
	"context"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

type semantic struct{}

// Semantic packs whole sentences greedily, splitting single sentences
// that alone exceed MaxChunkSize on the nearest whitespace run (a phrase
// boundary) so no sentence silently disappears.
func Semantic() chunker.Strategy { return semantic{} }

func (semantic) Name() string { return "semantic" }

func (semantic) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return nil, err
	}

	b := chunker.NewBuilder(opts, "semantic", parsed.Sections)
	cjk := isCJKLanguage(parsed.Language.Code)

	for _, s := range sentenceSpans(parsed.Body, cjk) {
		count, err := tok.Count(s.Text)
		if err != nil {
			return nil, err
		}
		if count <= opts.MaxChunkSize {
			b.Add(chunker.Unit{Text: s.Text, Start: s.Start, End: s.End, Tokens: count, Boundary: true})
			continue
		}
		// Sentence alone exceeds the budget: fall back to word-level
		// phrase splitting so it still fits within jumbo handling.
		for _, w := range splitWordsWithOffsets(s.Text) {
			wc, err := tok.Count(w.Text)
			if err != nil {
				return nil, err
			}
			b.Add(chunker.Unit{Text: w.Text, Start: s.Start + w.Start, End: s.Start + w.End, Tokens: wc})
		}
	}

	return b.Finish(contentFingerprint, optionsFingerprint), nil
}

func (semantic) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	if opts.MaxChunkSize <= 0 {
		return 1
	}
	return max(1, len(parsed.Body)/(opts.MaxChunkSize*5))
}

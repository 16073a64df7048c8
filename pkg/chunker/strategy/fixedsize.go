package strategy

import (
	"context"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

type fixedSize struct{}

// FixedSize is a token-bounded sliding window over the document body: it
// feeds every whitespace-delimited word through chunker.Builder in order,
// which already implements the greedy-pack-then-carry-overlap discipline,
// so a fixed window with sliding overlap falls out of the shared builder
// for free.
func FixedSize() chunker.Strategy { return fixedSize{} }

func (fixedSize) Name() string { return "fixedsize" }

func (fixedSize) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return nil, err
	}

	b := chunker.NewBuilder(opts, "fixedsize", parsed.Sections)
	for _, w := range splitWordsWithOffsets(parsed.Body) {
		count, err := tok.Count(w.Text)
		if err != nil {
			return nil, err
		}
		b.Add(chunker.Unit{Text: w.Text, Start: w.Start, End: w.End, Tokens: count})
	}

	return b.Finish(contentFingerprint, optionsFingerprint), nil
}

func (fixedSize) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	if opts.MaxChunkSize <= 0 {
		return 1
	}
	approxTokens := len(parsed.Body) / 5
	return max(1, approxTokens/opts.MaxChunkSize)
}

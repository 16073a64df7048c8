package strategy

import (
	"context"
	"regexp"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

var blankLineSplit = regexp.MustCompile(`\n{2,}`)

// paragraphSpans splits body on blank-line sequences, keeping the
// separator attached to the end of the preceding paragraph so spans
// concatenate back to the original text exactly.
func paragraphSpans(body string) []wordSpan {
	var spans []wordSpan
	idx := blankLineSplit.FindAllStringIndex(body, -1)
	cursor := 0
	for _, loc := range idx {
		end := loc[1]
		spans = append(spans, wordSpan{Text: body[cursor:end], Start: cursor, End: end})
		cursor = end
	}
	if cursor < len(body) {
		spans = append(spans, wordSpan{Text: body[cursor:], Start: cursor, End: len(body)})
	}
	return spans
}

type paragraph struct{}

// Paragraph splits on blank-line sequences, greedily packing paragraphs
// into the shared Builder. Overlap is satisfied by the builder's own
// trailing-unit carry-over.
func Paragraph() chunker.Strategy { return paragraph{} }

func (paragraph) Name() string { return "paragraph" }

func (paragraph) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return nil, err
	}

	b := chunker.NewBuilder(opts, "paragraph", parsed.Sections)
	for _, p := range paragraphSpans(parsed.Body) {
		count, err := tok.Count(p.Text)
		if err != nil {
			return nil, err
		}
		b.Add(chunker.Unit{Text: p.Text, Start: p.Start, End: p.End, Tokens: count, Boundary: true})
	}

	return b.Finish(contentFingerprint, optionsFingerprint), nil
}

func (paragraph) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	if opts.MaxChunkSize <= 0 {
		return 1
	}
	return max(1, len(parsed.Body)/(opts.MaxChunkSize*5))
}

package strategy

import (
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

// splitIntoBuilder feeds text into b as paragraph-level units, falling
// back to sentence-level and then word-level splitting whenever a
// paragraph (or sentence) alone still exceeds maxSize. baseOffset is
// text's starting byte offset within the overall document so every unit
// keeps a document-absolute Start/End.
func splitIntoBuilder(b *chunker.Builder, tok tokenizer.Tokenizer, text string, baseOffset int, maxSize int, cjk bool) error {
	for _, p := range paragraphSpans(text) {
		count, err := tok.Count(p.Text)
		if err != nil {
			return err
		}
		if count <= maxSize {
			b.Add(chunker.Unit{Text: p.Text, Start: baseOffset + p.Start, End: baseOffset + p.End, Tokens: count, Boundary: true})
			continue
		}
		if err := splitParagraphBySentence(b, tok, p.Text, baseOffset+p.Start, maxSize, cjk); err != nil {
			return err
		}
	}
	return nil
}

func splitParagraphBySentence(b *chunker.Builder, tok tokenizer.Tokenizer, text string, baseOffset int, maxSize int, cjk bool) error {
	for _, s := range sentenceSpans(text, cjk) {
		count, err := tok.Count(s.Text)
		if err != nil {
			return err
		}
		if count <= maxSize {
			b.Add(chunker.Unit{Text: s.Text, Start: baseOffset + s.Start, End: baseOffset + s.End, Tokens: count, Boundary: true})
			continue
		}
		for _, w := range splitWordsWithOffsets(s.Text) {
			wc, err := tok.Count(w.Text)
			if err != nil {
				return err
			}
			b.Add(chunker.Unit{Text: w.Text, Start: baseOffset + s.Start + w.Start, End: baseOffset + s.Start + w.End, Tokens: wc})
		}
	}
	return nil
}

// isBlank reports whether text has no non-whitespace content.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

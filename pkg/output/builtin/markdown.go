package builtin

import (
	"fmt"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/output"
)

// Markdown returns a Serializer rendering chunks separated by a
// horizontal rule, each preceded by an HTML comment line encoding its
// heading path and sequence (spec.md §6).
func Markdown() output.Serializer {
	return func(_ output.DocumentMeta, chunks []docmodel.DocumentChunk) ([]byte, error) {
		var b strings.Builder
		for i, c := range chunks {
			if i > 0 {
				b.WriteString("\n---\n\n")
			}
			b.WriteString(chunkComment(c))
			b.WriteString(c.Content)
			if !strings.HasSuffix(c.Content, "\n") {
				b.WriteByte('\n')
			}
		}
		return []byte(b.String()), nil
	}
}

// MarkdownChunk returns a ChunkSerializer rendering a single chunk the
// same way Markdown renders each of its entries, for per-file output.
func MarkdownChunk() output.ChunkSerializer {
	return func(_ output.DocumentMeta, chunk docmodel.DocumentChunk) ([]byte, error) {
		var b strings.Builder
		b.WriteString(chunkComment(chunk))
		b.WriteString(chunk.Content)
		if !strings.HasSuffix(chunk.Content, "\n") {
			b.WriteByte('\n')
		}
		return []byte(b.String()), nil
	}
}

func chunkComment(c docmodel.DocumentChunk) string {
	return fmt.Sprintf("<!-- heading_path: %s | sequence: %d/%d -->\n", headingPathString(c.HeadingPath), c.Sequence, c.Total)
}

func headingPathString(path []string) string {
	if len(path) == 0 {
		return "[]"
	}
	return "[" + strings.Join(path, " > ") + "]"
}

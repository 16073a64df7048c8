package builtin

import (
	"context"
	"io"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// Markdown reads a .md/.markdown source as-is; frontmatter extraction and
// heading-tree folding are the Parser's job, not the Reader's — the Reader
// contract only produces plain text plus extraction warnings.
func Markdown(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}
	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "markdown",
		Text:       string(data),
	}, nil
}

// MarkdownEntry is the registry entry for .md/.markdown files.
var MarkdownEntry = reader.Entry{
	Format:     "markdown",
	Extensions: []string{".md", ".markdown"},
	MimeMatch:  func(mime string) bool { return mime == "text/markdown" },
	Read:       Markdown,
}

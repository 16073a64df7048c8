package builtin

import (
	"context"
	"io"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// HTML converts an .html/.htm source to Markdown so the rest of the
// pipeline (heading-tree parsing, section transforms) can treat it exactly
// like a native Markdown document. Conversion failures degrade to the raw
// HTML as plain text with a warning rather than aborting extraction.
func HTML(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	var warnings []string
	text, convErr := md.ConvertString(string(data))
	if convErr != nil {
		warnings = append(warnings, "html-to-markdown conversion failed, falling back to raw HTML: "+convErr.Error())
		text = string(data)
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "html",
		Text:       text,
		Warnings:   warnings,
	}, nil
}

// HTMLEntry is the registry entry for .html/.htm files.
var HTMLEntry = reader.Entry{
	Format:     "html",
	Extensions: []string{".html", ".htm"},
	MimeMatch:  func(mime string) bool { return mime == "text/html" },
	Read:       HTML,
}

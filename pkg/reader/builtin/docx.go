package builtin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

// DOCX extracts body text from a .docx source. The underlying library
// exposes the document's raw document.xml via GetContent; paragraph and run
// tags are stripped with a tag-matching pattern since the library does not
// offer a plain-text accessor.
func DOCX(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return docmodel.RawContent{}, fmt.Errorf("open docx %s: %w", name, err)
	}
	defer doc.Close()

	raw := doc.Editable().GetContent()
	raw = strings.ReplaceAll(raw, "</w:p>", "</w:p>\n")
	text := docxTagPattern.ReplaceAllString(raw, "")
	text = strings.TrimSpace(text)

	var warnings []string
	if text == "" {
		warnings = append(warnings, "no extractable text found in document body")
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "docx",
		Text:       text,
		Warnings:   warnings,
	}, nil
}

// DOCXEntry is the registry entry for .docx files.
var DOCXEntry = reader.Entry{
	Format:     "docx",
	Extensions: []string{".docx"},
	MimeMatch: func(mime string) bool {
		return mime == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	},
	Read: DOCX,
}

package builtin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// PDF extracts per-page text from a .pdf source, joined with blank-line
// page breaks. Pages that fail to yield content (scanned images, malformed
// content streams) are skipped and reported as warnings rather than
// aborting the whole extraction.
func PDF(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return docmodel.RawContent{}, fmt.Errorf("open pdf %s: %w", name, err)
	}

	var sb strings.Builder
	var warnings []string
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		var txt pdf.Text
		if err := page.GetContent(&txt, nil); err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: failed to extract text: %v", i, err))
			continue
		}
		sb.WriteString(txt.String())
		sb.WriteString("\n\n")
	}

	if sb.Len() == 0 {
		warnings = append(warnings, "no extractable text found, document may be scanned or image-only")
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "pdf",
		Text:       sb.String(),
		Warnings:   warnings,
	}, nil
}

// PDFEntry is the registry entry for .pdf files.
var PDFEntry = reader.Entry{
	Format:     "pdf",
	Extensions: []string{".pdf"},
	MimeMatch:  func(mime string) bool { return mime == "application/pdf" },
	Read:       PDF,
}

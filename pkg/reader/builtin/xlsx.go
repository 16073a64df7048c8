package builtin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// XLSX renders every sheet of a .xlsx workbook as a Markdown table, in
// sheet order, with an h2 heading naming each sheet. Sheets that fail to
// yield rows are skipped with a warning rather than aborting the whole
// extraction.
func XLSX(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return docmodel.RawContent{}, fmt.Errorf("open xlsx %s: %w", name, err)
	}
	defer f.Close()

	var sb strings.Builder
	var warnings []string

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("sheet %q: %v", sheet, err))
			continue
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n\n", sheet)
		width := len(rows[0])
		writeMarkdownRow(&sb, rows[0])
		sb.WriteString(strings.Repeat("| --- ", width))
		sb.WriteString("|\n")
		for _, row := range rows[1:] {
			writeMarkdownRow(&sb, row)
		}
		sb.WriteString("\n")
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "xlsx",
		Text:       sb.String(),
		Warnings:   warnings,
	}, nil
}

// XLSXEntry is the registry entry for .xlsx files.
var XLSXEntry = reader.Entry{
	Format:     "xlsx",
	Extensions: []string{".xlsx"},
	MimeMatch: func(mime string) bool {
		return mime == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	},
	Read: XLSX,
}

package builtin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// CSV renders a .csv source as a Markdown table, treating the first row as
// a header. Rows with a column count mismatched against the header are kept
// but reported as warnings rather than rejected outright, matching the
// malformed-source-is-a-warning-not-an-error posture used across the reader
// package. There is no third-party CSV reader in the retrieved example
// corpus, so this is built directly on encoding/csv.
func CSV(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return docmodel.RawContent{}, err
	}

	if len(rows) == 0 {
		return docmodel.RawContent{
			SourceName: name,
			ByteSize:   int64(len(data)),
			Format:     "csv",
			Text:       "",
		}, nil
	}

	var sb strings.Builder
	var warnings []string

	header := rows[0]
	writeMarkdownRow(&sb, header)
	sb.WriteString(strings.Repeat("| --- ", len(header)))
	sb.WriteString("|\n")

	for i, row := range rows[1:] {
		if len(row) != len(header) {
			warnings = append(warnings, fmt.Sprintf("row %d has %d columns, expected %d", i+2, len(row), len(header)))
		}
		writeMarkdownRow(&sb, row)
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "csv",
		Text:       sb.String(),
		Warnings:   warnings,
	}, nil
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	sb.WriteByte('|')
	for _, cell := range cells {
		sb.WriteByte(' ')
		sb.WriteString(strings.ReplaceAll(cell, "|", "\\|"))
		sb.WriteString(" |")
	}
	sb.WriteByte('\n')
}

// CSVEntry is the registry entry for .csv files.
var CSVEntry = reader.Entry{
	Format:     "csv",
	Extensions: []string{".csv"},
	MimeMatch:  func(mime string) bool { return mime == "text/csv" },
	Read:       CSV,
}

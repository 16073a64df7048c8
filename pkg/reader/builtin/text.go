package builtin

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// Text reads a plain .txt source verbatim. There is no structure to
// extract, so this reader is a thin bufio.Scanner pass that also adds a
// warning when a non-empty file contains no newline at all (a common
// symptom of a binary file misnamed .txt).
func Text(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}
	var sb strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := 0
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
		lines++
	}
	if err := scanner.Err(); err != nil {
		return docmodel.RawContent{}, err
	}

	var warnings []string
	if len(data) > 0 && !strings.Contains(string(data), "\n") {
		warnings = append(warnings, "text source contains no newline-delimited lines")
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(sb.Len()),
		Format:     "text",
		Text:       sb.String(),
		Warnings:   warnings,
	}, nil
}

// TextEntry is the registry entry for .txt files.
var TextEntry = reader.Entry{
	Format:     "text",
	Extensions: []string{".txt"},
	MimeMatch:  func(mime string) bool { return mime == "text/plain" },
	Read:       Text,
}

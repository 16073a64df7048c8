package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// JSON flattens a JSON document into a Markdown-like text body: object keys
// become headings, arrays become bullet lists, scalars become leaf bullets.
// There is no JSON-to-text library in the retrieved example corpus, so this
// reader is implemented directly on encoding/json.
func JSON(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	var value any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if decErr := dec.Decode(&value); decErr != nil {
		return docmodel.RawContent{
			SourceName: name,
			ByteSize:   int64(len(data)),
			Format:     "json",
			Text:       string(data),
			Warnings:   []string{"invalid JSON, emitting raw bytes as text: " + decErr.Error()},
		}, nil
	}

	var sb strings.Builder
	flattenJSON(&sb, "", value, 0)

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "json",
		Text:       sb.String(),
	}, nil
}

func flattenJSON(sb *strings.Builder, key string, value any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if key != "" {
			fmt.Fprintf(sb, "%s%s %s\n", indent, strings.Repeat("#", min(depth+1, 6)), key)
		}
		for _, k := range keys {
			flattenJSON(sb, k, v[k], depth+1)
		}
	case []any:
		if key != "" {
			fmt.Fprintf(sb, "%s%s %s\n", indent, strings.Repeat("#", min(depth+1, 6)), key)
		}
		for _, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				flattenJSON(sb, "", item, depth+1)
			default:
				fmt.Fprintf(sb, "%s- %v\n", indent, item)
			}
		}
	default:
		if key != "" {
			fmt.Fprintf(sb, "%s- **%s**: %v\n", indent, key, v)
		} else {
			fmt.Fprintf(sb, "%s%v\n", indent, v)
		}
	}
}

// JSONEntry is the registry entry for .json files.
var JSONEntry = reader.Entry{
	Format:     "json",
	Extensions: []string{".json"},
	MimeMatch:  func(mime string) bool { return mime == "application/json" },
	Read:       JSON,
}

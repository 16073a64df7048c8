package builtin

import (
	"bytes"
	"encoding/json"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/output"
)

// JSONL returns a Serializer producing one compact JSON object per chunk,
// newline-separated, with the same field names as JSON (spec.md §6).
// Document metadata is omitted from the line stream itself since JSONL
// has no place for an envelope; callers that need it should pair this
// with info.json.
func JSONL() output.Serializer {
	return func(_ output.DocumentMeta, chunks []docmodel.DocumentChunk) ([]byte, error) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		for _, c := range chunks {
			if err := enc.Encode(output.ToRecord(c)); err != nil {
				return nil, err
			}
		}
		return buf.Bytes(), nil
	}
}

// JSONLChunk returns a ChunkSerializer producing a single compact JSON
// line per chunk, for per-file directory output.
func JSONLChunk() output.ChunkSerializer {
	return func(_ output.DocumentMeta, chunk docmodel.DocumentChunk) ([]byte, error) {
		line, err := json.Marshal(output.ToRecord(chunk))
		if err != nil {
			return nil, err
		}
		return append(line, '\n'), nil
	}
}

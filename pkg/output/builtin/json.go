package builtin

import (
	"encoding/json"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/output"
)

// JSON returns a Serializer producing a single indented JSON object:
// {"document": {...}, "chunks": [...]}.
func JSON() output.Serializer {
	return func(doc output.DocumentMeta, chunks []docmodel.DocumentChunk) ([]byte, error) {
		envelope := output.Envelope{Document: doc, Chunks: output.ToRecords(chunks)}
		return json.MarshalIndent(envelope, "", "  ")
	}
}

// JSONChunk returns a ChunkSerializer producing one indented JSON object
// per chunk, for per-file directory output.
func JSONChunk() output.ChunkSerializer {
	return func(doc output.DocumentMeta, chunk docmodel.DocumentChunk) ([]byte, error) {
		return json.MarshalIndent(output.ToRecord(chunk), "", "  ")
	}
}

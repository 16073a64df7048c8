// Package output renders finished chunk lists into caller-facing formats
// and writes the per-document artifacts a directory-output run produces.
// It generalizes the teacher's pkg/header: the same "pluggable generator
// function type plus a handful of builtin implementations" shape, applied
// to a whole result (document metadata plus every chunk) instead of the
// per-chunk frontmatter header text pkg/header renders.
package output

import (
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// Format names one of the three supported output encodings.
type Format string

const (
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatMarkdown Format = "markdown"
)

// Extension returns the file extension (without the leading dot)
// associated with f. Unrecognized formats fall back to "json".
func (f Format) Extension() string {
	switch f {
	case FormatJSONL:
		return "jsonl"
	case FormatMarkdown:
		return "md"
	default:
		return "json"
	}
}

// DocumentMeta is the document-level metadata carried alongside a chunk
// list in the JSON/JSONL envelope and in info.json.
type DocumentMeta struct {
	SourceName string `json:"source_name"`
	Format     string `json:"format"`
	Language   string `json:"language"`
	Strategy   string `json:"strategy"`
}

// Record is the serialized shape of a single chunk, carrying exactly the
// field list spec.md §6 names: id, content, start, end, heading_path,
// sequence, total, quality, density, importance, tokens, strategy, props.
// Density and Importance are repeated at the top level even though they
// also appear inside Quality, matching that field list literally rather
// than asking callers to reach into a nested object for two of its own
// headline fields.
type Record struct {
	ID          string           `json:"id"`
	Content     string           `json:"content"`
	Start       int              `json:"start"`
	End         int              `json:"end"`
	HeadingPath []string         `json:"heading_path"`
	Sequence    int              `json:"sequence"`
	Total       int              `json:"total"`
	Quality     docmodel.Quality `json:"quality"`
	Density     float64          `json:"density"`
	Importance  float64          `json:"importance"`
	Tokens      int              `json:"tokens"`
	Strategy    string           `json:"strategy"`
	Props       map[string]any   `json:"props"`
}

// ToRecord projects a DocumentChunk onto its serialized Record shape.
func ToRecord(c docmodel.DocumentChunk) Record {
	props := map[string]any(c.Props)
	if props == nil {
		props = map[string]any{}
	}
	headingPath := c.HeadingPath
	if headingPath == nil {
		headingPath = []string{}
	}
	return Record{
		ID:          c.ID,
		Content:     c.Content,
		Start:       c.Start,
		End:         c.End,
		HeadingPath: headingPath,
		Sequence:    c.Sequence,
		Total:       c.Total,
		Quality:     c.Quality,
		Density:     c.Quality.Density,
		Importance:  c.Quality.Importance,
		Tokens:      c.Tokens,
		Strategy:    c.Strategy,
		Props:       props,
	}
}

// ToRecords projects a whole chunk list.
func ToRecords(chunks []docmodel.DocumentChunk) []Record {
	out := make([]Record, len(chunks))
	for i, c := range chunks {
		out[i] = ToRecord(c)
	}
	return out
}

// Envelope is the JSON/JSONL whole-result shape: {"document": {...},
// "chunks": [...]}.
type Envelope struct {
	Document DocumentMeta `json:"document"`
	Chunks   []Record     `json:"chunks"`
}

// Serializer renders an entire result (document metadata plus every
// chunk) to bytes in one call, for the `fluxdoc chunk` stdout path.
type Serializer func(doc DocumentMeta, chunks []docmodel.DocumentChunk) ([]byte, error)

// ChunkSerializer renders a single chunk to bytes, for the per-chunk
// files `fluxdoc process` writes into its output directory.
type ChunkSerializer func(doc DocumentMeta, chunk docmodel.DocumentChunk) ([]byte, error)

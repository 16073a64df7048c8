package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// Summary digests a finished chunk list's size statistics for info.json.
type Summary struct {
	ChunkCount      int     `json:"chunk_count"`
	CharTotal       int     `json:"char_total"`
	MinChunkSize    int     `json:"min_chunk_size"`
	AvgChunkSize    float64 `json:"avg_chunk_size"`
	MaxChunkSize    int     `json:"max_chunk_size"`
	EnrichedCount   int     `json:"enriched_count"`
	ImagesExtracted int     `json:"images_extracted"`
	ImagesSkipped   int     `json:"images_skipped"`
}

// Summarize computes a Summary from a finished chunk list plus the
// enrichment/image tallies pkg/pipeline.Result carries alongside it.
func Summarize(chunks []docmodel.DocumentChunk, enrichedCount, imagesExtracted, imagesSkipped int) Summary {
	s := Summary{ChunkCount: len(chunks), EnrichedCount: enrichedCount, ImagesExtracted: imagesExtracted, ImagesSkipped: imagesSkipped}
	if len(chunks) == 0 {
		return s
	}
	s.MinChunkSize = len(chunks[0].Content)
	s.MaxChunkSize = len(chunks[0].Content)
	for _, c := range chunks {
		n := len(c.Content)
		s.CharTotal += n
		if n < s.MinChunkSize {
			s.MinChunkSize = n
		}
		if n > s.MaxChunkSize {
			s.MaxChunkSize = n
		}
	}
	s.AvgChunkSize = float64(s.CharTotal) / float64(len(chunks))
	return s
}

// Info is the info.json companion digest spec.md §6 names: source
// filename, the chunking options used, the strategy actually selected,
// a processing timestamp, the AI provider name when enrichment ran, and
// the chunk-size summary statistics.
type Info struct {
	SourceName   string                   `json:"source_name"`
	Format       string                   `json:"format"`
	Strategy     string                   `json:"strategy"`
	OutputFormat string                   `json:"output_format"`
	Options      docmodel.ChunkingOptions `json:"options"`
	ProcessedAt  time.Time                `json:"processed_at"`
	Provider     string                   `json:"provider,omitempty"`
	Enriched     bool                     `json:"enriched"`
	Summary      Summary                  `json:"summary"`
}

// WriteInfo marshals info as indented JSON and writes it to
// dir/info.json.
func WriteInfo(dir string, info Info) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "info.json"), data, 0644)
}

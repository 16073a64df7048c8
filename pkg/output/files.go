package output

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

var (
	specialCharPattern   = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	underscoreRunPattern = regexp.MustCompile(`_+`)
)

// SanitizeFilename replaces special characters with underscores, collapses
// consecutive underscores, and trims leading/trailing underscores.
func SanitizeFilename(filename string) string {
	sanitized := specialCharPattern.ReplaceAllString(filename, "_")
	sanitized = underscoreRunPattern.ReplaceAllString(sanitized, "_")
	return strings.Trim(sanitized, "_")
}

// ChunkFilename builds a per-chunk output filename from the source
// document's name, the chunk's 1-indexed sequence, and the chosen
// format's extension: {hash}_{stem}.{seq:03d}.{ext}, where hash is the
// first 8 hex characters of SHA-256(directory component of sourceName).
// Generalized from the teacher's generateChunkFilename/sanitizeFilename
// scheme (cmd/chunky/output.go), which hard-coded a .md extension and
// read FilePath/ChunkIndex off its own Chunk type.
func ChunkFilename(sourceName string, sequence int, ext string) string {
	dirPath := filepath.Dir(sourceName)
	hash := sha256.Sum256([]byte(dirPath))
	hashPrefix := hex.EncodeToString(hash[:])[:8]

	stem := filepath.Base(sourceName)
	if e := filepath.Ext(stem); e != "" {
		stem = stem[:len(stem)-len(e)]
	}
	stem = SanitizeFilename(stem)

	return fmt.Sprintf("%s_%s.%03d.%s", hashPrefix, stem, sequence, ext)
}

// WriteChunks writes one file per chunk into dir, creating it if needed,
// and returns the paths written in chunk order.
func WriteChunks(dir string, doc DocumentMeta, chunks []docmodel.DocumentChunk, format Format, ser ChunkSerializer) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	ext := format.Extension()
	written := make([]string, 0, len(chunks))
	for _, c := range chunks {
		data, err := ser(doc, c)
		if err != nil {
			return written, fmt.Errorf("serialize chunk %s: %w", c.ID, err)
		}
		name := ChunkFilename(doc.SourceName, c.Sequence, ext)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("write chunk file %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

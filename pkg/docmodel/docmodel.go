// Package docmodel defines the core value types that flow through the
// ingestion pipeline: RawContent out of a Reader, ParsedContent out of a
// Parser, and DocumentChunk/ChunkingOptions around the chunking stage.
package docmodel

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fluxdoc/fluxdoc/pkg/props"
	"github.com/fluxdoc/fluxdoc/pkg/section"
)

// Image is a pre-extraction image detected by a Reader: raw bytes, its MIME
// type, and a placeholder string that appears in RawContent.Text where the
// image occurred (later resolved by an enricher's ImageToTextService).
type Image struct {
	Bytes       []byte
	MimeType    string
	Placeholder string
}

// RawContent is a Reader's output. It is created once, consumed once by the
// Parser, and never mutated afterward.
type RawContent struct {
	// SourceName is the filename or logical path the bytes came from.
	SourceName string
	// ByteSize is the size of the original source in bytes.
	ByteSize int64
	// Format is the detected/declared format, e.g. "markdown", "pdf".
	Format string
	// Text is the extracted plain text.
	Text string
	// Images are pre-extraction images found in the source, in document order.
	Images []Image
	// Warnings accumulates non-fatal extraction problems (MalformedSource-class).
	Warnings []string
}

// LanguageInfo is the Parser's detected primary language and its confidence.
type LanguageInfo struct {
	Code       string // ISO-639-1, e.g. "en", "ko", "ja", "zh"
	Confidence float64
}

// ParsedContent is a Parser's output: a normalized body, a heading-indexed
// section tree, detected language, topics, and a structure-quality score.
// It is created once per document and shared read-only with the chunker.
type ParsedContent struct {
	Body              string
	Sections          *section.Section
	Language          LanguageInfo
	Topics            []string
	StructureScore    float64
	Warnings          []string
	SourceFormat      string
	OriginalByteSize  int64
}

// ChunkingOptions configures a chunking strategy run.
type ChunkingOptions struct {
	StrategyName      string
	MaxChunkSize      int
	OverlapSize       int
	PreserveStructure bool
	EnableEnrichment  bool
	Props             props.Bag
}

// DefaultChunkingOptions returns the conservative defaults used when a
// caller supplies none: Paragraph strategy, 500 token budget, 15% overlap.
func DefaultChunkingOptions() ChunkingOptions {
	return ChunkingOptions{
		StrategyName:      "paragraph",
		MaxChunkSize:      500,
		OverlapSize:       75,
		PreserveStructure: true,
		Props:             props.EmptyBag(),
	}
}

// CanonicalJSON returns a deterministic JSON encoding of the options used as
// input to the cache fingerprint: keys are marshaled via Go's default
// lexicographic-map-key ordering, which encoding/json already guarantees.
func (o ChunkingOptions) CanonicalJSON() ([]byte, error) {
	type canonical struct {
		StrategyName      string    `json:"strategy_name"`
		MaxChunkSize      int       `json:"max_chunk_size"`
		OverlapSize       int       `json:"overlap_size"`
		PreserveStructure bool      `json:"preserve_structure"`
		EnableEnrichment  bool      `json:"enable_enrichment"`
		Props             props.Bag `json:"props"`
	}
	return json.Marshal(canonical{
		StrategyName:      o.StrategyName,
		MaxChunkSize:      o.MaxChunkSize,
		OverlapSize:       o.OverlapSize,
		PreserveStructure: o.PreserveStructure,
		EnableEnrichment:  o.EnableEnrichment,
		Props:             o.Props,
	})
}

// Quality holds the per-chunk quality fields computed by pkg/quality.
type Quality struct {
	Completeness      float64
	Coherence         float64
	Density            float64
	Importance        float64
	ContextDependency float64
}

// DocumentChunk is the pipeline's primary output.
type DocumentChunk struct {
	ID         string
	Content    string
	Start      int
	End        int
	Page       *int
	HeadingPath []string
	Sequence   int
	Total      int
	Quality    Quality
	Strategy   string
	Tokens     int
	Props      props.Bag

	// ParentID links a Hierarchical-strategy child chunk to its parent;
	// empty for every other strategy and for parent chunks themselves.
	ParentID string
}

// chunkIDNamespace is a fixed UUID namespace so that ChunkID is a pure
// function of (contentFingerprint, optionsFingerprint): identical inputs
// always produce byte-identical identifiers (spec invariant 6), without a
// central counter or random source.
var chunkIDNamespace = uuid.MustParse("6ba7b815-9dad-11d1-80b4-00c04fd430c8")

// ChunkID derives a stable chunk identifier from the document's content
// fingerprint, the canonical options fingerprint, and the chunk's sequence
// index within the document.
func ChunkID(contentFingerprint, optionsFingerprint string, sequence int) string {
	name := contentFingerprint + "|" + optionsFingerprint + "|" + itoa(sequence)
	return uuid.NewSHA1(chunkIDNamespace, []byte(name)).String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ContentFingerprint returns the base64-encoded SHA-256 digest of raw
// document bytes, the first half of the cache key per spec.md §4.6.
func ContentFingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// OptionsFingerprint returns the base64-encoded SHA-256 digest of the
// canonical JSON encoding of options, the second half of the cache key.
func OptionsFingerprint(o ChunkingOptions) (string, error) {
	canon, err := o.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

// CacheKey combines a content fingerprint and an options fingerprint into
// the single cache key spec.md §4.6 describes ("SHA-256(file) ⊕
// SHA-256(options)"): concatenation rather than XOR, since both inputs are
// already fixed-length digests and concatenation preserves both halves'
// entropy instead of risking collision cancellation.
func CacheKey(contentFingerprint, optionsFingerprint string) string {
	return contentFingerprint + ":" + optionsFingerprint
}

// ProcessedAt is a companion timestamp recorded alongside cached results;
// callers that need determinism in tests should treat it as metadata only,
// never as part of any fingerprint.
type ProcessedAt = time.Time

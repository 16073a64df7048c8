package quality

import (
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// ScoreChunk computes the per-chunk Quality fields carried on
// docmodel.DocumentChunk: Completeness and ContextDependency reuse the
// same heuristics Analyze's aggregate Report is built from; Coherence is
// the chunk's lexical overlap with its immediate neighbors (the same
// jaccard measure Analyze uses pairwise, but local to one chunk instead
// of averaged across the document); Density and Importance are this
// chunk's own meaningful-word ratio and technical-keyword hit rate.
func ScoreChunk(chunk docmodel.DocumentChunk, index int, all []docmodel.DocumentChunk, langCode string) docmodel.Quality {
	vocab := vocabularyFor(langCode)
	ws := words(chunk.Content)

	coherence := 0.0
	neighbors := 0
	if index > 0 {
		coherence += jaccard(ws, words(all[index-1].Content))
		neighbors++
	}
	if index+1 < len(all) {
		coherence += jaccard(ws, words(all[index+1].Content))
		neighbors++
	}
	if neighbors > 0 {
		coherence /= float64(neighbors)
	}

	meaningful := 0
	for _, w := range ws {
		if len(w) > 3 && !vocab.stopWords[w] {
			meaningful++
		}
	}
	density := 0.0
	if len(ws) > 0 {
		density = clamp01(float64(meaningful) / float64(len(ws)))
	}

	lower := strings.ToLower(chunk.Content)
	keywordHits := 0
	for _, kw := range vocab.technicalSeed {
		keywordHits += strings.Count(lower, kw)
	}
	importance := 0.0
	if len(ws) > 0 {
		importance = clamp01(float64(keywordHits) / float64(len(ws)) * 10)
	}

	return docmodel.Quality{
		Completeness:      completenessScore(chunk.Content),
		Coherence:         clamp01(coherence),
		Density:           density,
		Importance:        importance,
		ContextDependency: ContextDependency(chunk.Content, langCode),
	}
}

// ScoreChunks fills Quality on every chunk in place (index order doubles
// as neighbor order) and returns the same slice for chaining.
func ScoreChunks(chunks []docmodel.DocumentChunk, langCode string) []docmodel.DocumentChunk {
	for i := range chunks {
		chunks[i].Quality = ScoreChunk(chunks[i], i, chunks, langCode)
	}
	return chunks
}

// Package quality scores a sequence of chunks along three metric bundles
// (chunking quality, information density, structural coherence) and
// combines them into an overall score plus threshold-triggered
// recommendations. No text-quality-scoring library appears anywhere in the
// retrieved example corpus, so this package is entirely our own arithmetic
// over stdlib strings/unicode, the same way the teacher's own chunking
// package carries no dependency (see DESIGN.md).
package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// ChunkingMetrics bundles the per-chunk structural quality signals.
type ChunkingMetrics struct {
	Completeness         float64
	ContentConsistency   float64
	BoundaryQuality      float64
	SizeDistribution     float64
	OverlapEffectiveness float64
}

// DensityMetrics bundles information-density signals.
type DensityMetrics struct {
	MeaningfulWordRatio float64
	KeywordRichness     float64
	FactualContentRatio float64
	Redundancy          float64
}

// StructureMetrics bundles structural-coherence signals.
type StructureMetrics struct {
	StructurePreservation float64
	ContextContinuity     float64
	ReferenceIntegrity    float64
	MetadataRichness      float64
}

// Recommendation flags a metric that fell below its configured threshold.
type Recommendation struct {
	Metric              string
	Priority            string
	ExpectedImprovement float64
	Suggestion          string
}

// Report is the full quality analysis of a chunk sequence.
type Report struct {
	Chunking        ChunkingMetrics
	Density         DensityMetrics
	Structure       StructureMetrics
	Overall         float64
	Recommendations []Recommendation
}

var listMarkerPattern = regexp.MustCompile(`(?m)^\s*([-*+]|\d+[.)])\s+`)
var headingMarkerPattern = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+\S`)
var digitPattern = regexp.MustCompile(`\d`)

// Analyze computes a Report for a document's finished chunk sequence.
// langCode selects the English/Korean vocabulary switch used by several
// density and structure metrics.
func Analyze(chunks []docmodel.DocumentChunk, langCode string) Report {
	vocab := vocabularyFor(langCode)

	chunking := chunkingMetrics(chunks)
	density := densityMetrics(chunks, vocab)
	structure := structureMetrics(chunks, vocab)

	overall := 0.4*meanOf(chunking.Completeness, chunking.ContentConsistency, chunking.BoundaryQuality, chunking.SizeDistribution, chunking.OverlapEffectiveness) +
		0.3*meanOf(density.MeaningfulWordRatio, density.KeywordRichness, density.FactualContentRatio, 1-density.Redundancy) +
		0.3*meanOf(structure.StructurePreservation, structure.ContextContinuity, structure.ReferenceIntegrity, structure.MetadataRichness)

	return Report{
		Chunking:        chunking,
		Density:         density,
		Structure:       structure,
		Overall:         clamp01(overall),
		Recommendations: recommendations(chunking, density, structure),
	}
}

func chunkingMetrics(chunks []docmodel.DocumentChunk) ChunkingMetrics {
	if len(chunks) == 0 {
		return ChunkingMetrics{}
	}

	var completenessSum, boundarySum, overlapSum float64
	var lengths []float64
	for i, c := range chunks {
		lengths = append(lengths, float64(len(c.Content)))
		completenessSum += completenessScore(c.Content)

		if i+1 < len(chunks) {
			next := chunks[i+1]
			if endsOnSentencePunct(c.Content) && startsCapitalOrHeading(next.Content) {
				boundarySum++
			}
			overlapSum += jaccard(words(c.Content), words(next.Content))
		}
	}

	pairs := len(chunks) - 1
	boundaryQuality := 1.0
	overlapEffectiveness := 0.0
	if pairs > 0 {
		boundaryQuality = boundarySum / float64(pairs)
		overlapEffectiveness = overlapSum / float64(pairs)
	}

	return ChunkingMetrics{
		Completeness:         completenessSum / float64(len(chunks)),
		ContentConsistency:   1 - clamp01(normalizedVariance(lengths)),
		BoundaryQuality:      boundaryQuality,
		SizeDistribution:     1 - clamp01(coefficientOfVariation(lengths)),
		OverlapEffectiveness: overlapEffectiveness,
	}
}

// completenessScore rewards a chunk that ends on sentence punctuation,
// starts with a capital letter or a heading marker, and falls within a
// plausible retrieval-chunk length window.
func completenessScore(text string) float64 {
	score := 0.0
	if endsOnSentencePunct(text) {
		score += 0.4
	}
	if startsCapitalOrHeading(text) {
		score += 0.3
	}
	n := len(strings.TrimSpace(text))
	if n >= 50 && n <= 2000 {
		score += 0.3
	}
	return score
}

func densityMetrics(chunks []docmodel.DocumentChunk, vocab vocabulary) DensityMetrics {
	if len(chunks) == 0 {
		return DensityMetrics{}
	}

	var meaningfulTotal, tokenTotal int
	var keywordHits int
	var factualChunks int
	var redundancySum float64

	for i, c := range chunks {
		ws := words(c.Content)
		tokenTotal += len(ws)
		lower := strings.ToLower(c.Content)
		for _, w := range ws {
			if len(w) > 3 && !vocab.stopWords[w] {
				meaningfulTotal++
			}
		}
		for _, kw := range vocab.technicalSeed {
			keywordHits += strings.Count(lower, kw)
		}
		if digitPattern.MatchString(c.Content) || containsAny(lower, vocab.factualKeywords) {
			factualChunks++
		}
		if i+1 < len(chunks) {
			redundancySum += jaccard(ws, words(chunks[i+1].Content))
		}
	}

	meaningfulRatio := 0.0
	keywordRichness := 0.0
	if tokenTotal > 0 {
		meaningfulRatio = float64(meaningfulTotal) / float64(tokenTotal)
		keywordRichness = clamp01(float64(keywordHits) / float64(tokenTotal) * 10)
	}

	redundancy := 0.0
	if len(chunks) > 1 {
		redundancy = redundancySum / float64(len(chunks)-1)
	}

	return DensityMetrics{
		MeaningfulWordRatio: clamp01(meaningfulRatio),
		KeywordRichness:     keywordRichness,
		FactualContentRatio: float64(factualChunks) / float64(len(chunks)),
		Redundancy:          clamp01(redundancy),
	}
}

func structureMetrics(chunks []docmodel.DocumentChunk, vocab vocabulary) StructureMetrics {
	if len(chunks) == 0 {
		return StructureMetrics{}
	}

	var structured, referenced, metadataRich int
	var continuitySum float64

	for i, c := range chunks {
		if listMarkerPattern.MatchString(c.Content) || headingMarkerPattern.MatchString(c.Content) || len(c.HeadingPath) > 0 {
			structured++
		}
		if containsAny(strings.ToLower(c.Content), vocab.crossReferenceWords) {
			referenced++
		}
		if len(c.Props) > 0 || len(c.HeadingPath) > 0 {
			metadataRich++
		}
		if i+1 < len(chunks) {
			next := chunks[i+1]
			sim := jaccard(words(c.Content), words(next.Content))
			if startsWithDiscourseConnective(next.Content, vocab) {
				sim += 0.2
			}
			continuitySum += clamp01(sim)
		}
	}

	continuity := 0.0
	if len(chunks) > 1 {
		continuity = continuitySum / float64(len(chunks)-1)
	}

	return StructureMetrics{
		StructurePreservation: float64(structured) / float64(len(chunks)),
		ContextContinuity:     continuity,
		ReferenceIntegrity:    float64(referenced) / float64(len(chunks)),
		MetadataRichness:      float64(metadataRich) / float64(len(chunks)),
	}
}

func recommendations(c ChunkingMetrics, d DensityMetrics, s StructureMetrics) []Recommendation {
	var out []Recommendation
	if c.SizeDistribution < 0.7 {
		out = append(out, Recommendation{
			Metric: "size_distribution", Priority: "medium",
			ExpectedImprovement: 0.7 - c.SizeDistribution,
			Suggestion:          "tighten MaxChunkSize variance, e.g. reduce OverlapSize or switch to FixedSize",
		})
	}
	if c.BoundaryQuality < 0.6 {
		out = append(out, Recommendation{
			Metric: "boundary_quality", Priority: "high",
			ExpectedImprovement: 0.6 - c.BoundaryQuality,
			Suggestion:          "switch to Semantic or Smart to enforce sentence-boundary splits",
		})
	}
	if d.Redundancy > 0.7 {
		out = append(out, Recommendation{
			Metric: "redundancy", Priority: "medium",
			ExpectedImprovement: d.Redundancy - 0.7,
			Suggestion:          "reduce OverlapSize",
		})
	}
	if s.StructurePreservation < 0.7 {
		out = append(out, Recommendation{
			Metric: "structure_preservation", Priority: "low",
			ExpectedImprovement: 0.7 - s.StructurePreservation,
			Suggestion:          "switch to Intelligent or Hierarchical to respect the section tree",
		})
	}
	return out
}

func words(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		w := strings.ToLower(strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		}))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := wordSet(a)
	setB := wordSet(b)
	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func endsOnSentencePunct(text string) bool {
	t := strings.TrimRight(strings.TrimSpace(text), "\"')]")
	if t == "" {
		return false
	}
	last := t[len(t)-1]
	return last == '.' || last == '!' || last == '?' || last == '。' || last == '！' || last == '？'
}

func startsCapitalOrHeading(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if strings.HasPrefix(t, "#") || listMarkerPattern.MatchString(t) {
		return true
	}
	r := []rune(t)[0]
	return unicode.IsUpper(r)
}

func startsWithDiscourseConnective(text string, vocab vocabulary) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, c := range vocab.discourseConnectives {
		if strings.HasPrefix(t, c) {
			return true
		}
	}
	return false
}

func containsAny(lower string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

func meanOf(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func normalizedVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := meanOf(values...)
	if mean == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	variance := sumSq / float64(len(values))
	return variance / (mean * mean)
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := meanOf(values...)
	if mean == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(values)))
	return stddev / mean
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

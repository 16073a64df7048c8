package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/section"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

type auto struct {
	reg *chunker.Registry
}

// Auto is a thin wrapper holding a reference to the already-registered
// strategy set: it resolves a document down to exactly one inner strategy
// and a tuned (MaxChunkSize, OverlapSize) pair, then delegates entirely to
// it. There is no separate priority-rank system; the decision procedure
// below is the only resolution rule.
func Auto(reg *chunker.Registry) chunker.Strategy { return auto{reg: reg} }

func (auto) Name() string { return "auto" }

func (a auto) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	d := selectStrategy(parsed)

	inner, ok := a.reg.Get(d.strategyName)
	if !ok {
		return nil, fmt.Errorf("chunker: auto selected unknown strategy %q", d.strategyName)
	}

	tuned := opts
	tuned.MaxChunkSize = d.maxChunkSize
	tuned.OverlapSize = d.overlapSize

	chunks, err := inner.Chunk(ctx, parsed, tuned, tok)
	if err != nil {
		return nil, err
	}
	if len(chunks) > 0 {
		if chunks[0].Props == nil {
			chunks[0].Props = make(map[string]any)
		}
		chunks[0].Props["AutoSelectedStrategy"] = d.strategyName
		chunks[0].Props["OptimizedMaxChunkSize"] = d.maxChunkSize
		chunks[0].Props["OptimizedOverlapSize"] = d.overlapSize
		chunks[0].Props["AutoSelectionReasoning"] = d.reasoning
	}
	return chunks, nil
}

func (a auto) EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int {
	d := selectStrategy(parsed)
	inner, ok := a.reg.Get(d.strategyName)
	if !ok {
		return 1
	}
	tuned := opts
	tuned.MaxChunkSize = d.maxChunkSize
	tuned.OverlapSize = d.overlapSize
	return inner.EstimateChunkCount(parsed, tuned)
}

type decision struct {
	strategyName string
	maxChunkSize int
	overlapSize  int
	confidence   float64
	reasoning    string
}

// sizeRange is a static per-category (MaxChunkSize, OverlapSize%) tuning
// range; Auto picks the midpoint of each.
type sizeRange struct {
	minSize, maxSize         int
	minOverlapPct, maxOverlapPct int
}

var categorySizes = map[string]sizeRange{
	"technical": {500, 800, 20, 30},
	"legal":     {300, 500, 15, 25},
	"academic":  {200, 400, 25, 35},
	// Medical documents share Legal's tighter, more literal chunking: both
	// demand exact wording survive a split (dosage figures, clause text).
	"medical": {300, 500, 15, 25},
}

func (r sizeRange) midpoint() (maxSize, overlap int) {
	maxSize = (r.minSize + r.maxSize) / 2
	pct := (r.minOverlapPct + r.maxOverlapPct) / 2
	overlap = maxSize * pct / 100
	return
}

var tableHeavyFormats = map[string]bool{"xlsx": true, "csv": true}

var legalWords = []string{"whereas", "herein", "hereof", "pursuant to", "plaintiff", "defendant", "shall not", "the parties agree", "jurisdiction", "indemnif"}
var medicalWords = []string{"diagnosis", "patient", "symptom", "dosage", "mg/kg", "clinical trial", "prescribed", "contraindicat", "comorbid"}
var academicWords = []string{"abstract", "hypothesis", "methodology", "literature review", "et al.", "empirical", "peer-reviewed", "findings suggest", "statistically significant"}

// selectStrategy runs spec.md's §4.4 decision procedure over a parsed
// document and returns the resolved inner strategy plus its tuned sizing.
func selectStrategy(parsed docmodel.ParsedContent) decision {
	if tableHeavyFormats[parsed.SourceFormat] {
		max, overlap := categorySizes["technical"].midpoint()
		max = max * 3 / 2 // biased upward: table rows rarely split well below the budget
		return decision{
			strategyName: "fixedsize",
			maxChunkSize: max,
			overlapSize:  overlap,
			confidence:   0.9,
			reasoning:    fmt.Sprintf("source format %q is table-heavy", parsed.SourceFormat),
		}
	}

	headingDensity := headingLineDensity(parsed)
	hasFence := strings.Contains(parsed.Body, "```")
	if headingDensity > 0.05 || hasFence {
		max, overlap := categorySizes["technical"].midpoint()
		return decision{
			strategyName: "intelligent",
			maxChunkSize: max,
			overlapSize:  overlap,
			confidence:   0.85,
			reasoning:    "heading density above 5% or code fences present",
		}
	}

	avgSentenceWords := averageSentenceWords(parsed)
	if avgSentenceWords > 20 && headingDensity < 0.02 {
		return decision{
			strategyName: "semantic",
			maxChunkSize: docmodel.DefaultChunkingOptions().MaxChunkSize,
			overlapSize:  docmodel.DefaultChunkingOptions().OverlapSize,
			confidence:   0.7,
			reasoning:    "long sentences, few headings: narrative prose",
		}
	}

	if docType := detectDocumentType(parsed); docType != "" {
		max, overlap := categorySizes[docType].midpoint()
		return decision{
			strategyName: "smart",
			maxChunkSize: max,
			overlapSize:  overlap,
			confidence:   0.75,
			reasoning:    fmt.Sprintf("document type detected as %s", docType),
		}
	}

	return decision{
		strategyName: "paragraph",
		maxChunkSize: docmodel.DefaultChunkingOptions().MaxChunkSize,
		overlapSize:  docmodel.DefaultChunkingOptions().OverlapSize,
		confidence:   0.5,
		reasoning:    "no stronger signal; default to paragraph packing",
	}
}

// headingLineDensity is the fraction of the document's lines that are
// headings, a proxy for spec.md §4.4's "headings cover > 5% of lines".
func headingLineDensity(parsed docmodel.ParsedContent) float64 {
	totalLines := strings.Count(parsed.Body, "\n") + 1
	if totalLines <= 0 {
		return 0
	}
	headings := countHeadings(parsed.Sections)
	return float64(headings) / float64(totalLines)
}

// countHeadings counts every non-root node in the section tree, one per
// heading the parser found.
func countHeadings(s *section.Section) int {
	if s == nil {
		return 0
	}
	n := 0
	if !s.IsRoot() {
		n = 1
	}
	for _, c := range s.Children() {
		n += countHeadings(c)
	}
	return n
}

func averageSentenceWords(parsed docmodel.ParsedContent) float64 {
	spans := sentenceSpans(parsed.Body, isCJKLanguage(parsed.Language.Code))
	if len(spans) == 0 {
		return 0
	}
	total := 0
	for _, s := range spans {
		total += len(splitWordsWithOffsets(s.Text))
	}
	return float64(total) / float64(len(spans))
}

func detectDocumentType(parsed docmodel.ParsedContent) string {
	body := strings.ToLower(parsed.Body)
	counts := map[string]int{
		"legal":    countHits(body, legalWords),
		"medical":  countHits(body, medicalWords),
		"academic": countHits(body, academicWords),
	}
	best, bestCount := "", 0
	for category, n := range counts {
		if n > bestCount {
			best, bestCount = category, n
		}
	}
	if bestCount < 3 {
		return ""
	}
	return best
}

func countHits(body string, words []string) int {
	n := 0
	for _, w := range words {
		n += strings.Count(body, w)
	}
	return n
}

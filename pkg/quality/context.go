package quality

import (
	"strings"
	"unicode"
)

// ContextDependency scores how much a chunk's content depends on text
// outside itself to be understood: a weighted sum of pronoun ratio (0.30),
// reference-expression ratio (0.25), incomplete-sentence indicators
// (0.25), and inverse proper-noun density (0.20), each normalized to
// [0,1]. It is reported as part of each chunk's quality Score; no chunking
// strategy reads it, so it does not change overlap size.
func ContextDependency(text string, langCode string) float64 {
	vocab := vocabularyFor(langCode)
	ws := words(text)
	if len(ws) == 0 {
		return 0
	}

	pronounRatio := ratioOf(ws, vocab.pronouns)
	referenceRatio := containsRatio(strings.ToLower(text), vocab.referenceExpressions, len(ws))
	incompleteRatio := containsRatio(strings.ToLower(text), vocab.incompleteIndicators, len(ws))
	properNounDensity := properNounRatio(text, langCode)

	return clamp01(
		0.30*pronounRatio +
			0.25*referenceRatio +
			0.25*incompleteRatio +
			0.20*(1-properNounDensity),
	)
}

func ratioOf(ws []string, set map[string]bool) float64 {
	hits := 0
	for _, w := range ws {
		if set[w] {
			hits++
		}
	}
	return clamp01(float64(hits) / float64(len(ws)) * 5)
}

// containsRatio scores how many of the candidate phrases appear in text,
// scaled against the word count so a short chunk with one hit scores
// meaningfully higher than a long one with the same single hit.
func containsRatio(lowerText string, candidates []string, wordCount int) float64 {
	hits := 0
	for _, c := range candidates {
		hits += strings.Count(lowerText, c)
	}
	if wordCount == 0 {
		return 0
	}
	return clamp01(float64(hits) / float64(wordCount) * 10)
}

// properNounRatio approximates proper-noun density by counting
// capitalized, non-sentence-initial words for Latin scripts. Korean has no
// letter case, so a Korean chunk always scores zero proper-noun density
// (maximizing its context-dependency contribution from this term, which is
// the conservative choice when the signal isn't available).
func properNounRatio(text string, langCode string) float64 {
	if langCode == "ko" {
		return 0
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	capCount := 0
	for i, f := range fields {
		if i == 0 {
			continue // sentence-initial capitalization isn't a proper-noun signal
		}
		r := []rune(strings.TrimFunc(f, func(r rune) bool { return unicode.IsPunct(r) }))
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			capCount++
		}
	}
	return clamp01(float64(capCount) / float64(len(fields)))
}

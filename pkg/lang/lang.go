// Package lang detects the primary language of a document body. It runs a
// Unicode-range heuristic for CJK scripts first, then falls back to a
// rank-based n-gram identifier over a small embedded frequency table for
// Latin-script and other languages. No third-party language-ID library
// appears anywhere in the retrieved example corpus, so this package is
// implemented purely on the standard library (see DESIGN.md).
package lang

import (
	"sort"
	"unicode"
)

// Result is a detected language code (ISO-639-1) and a confidence in [0,1].
type Result struct {
	Code       string
	Confidence float64
}

// Detect inspects text and returns the most likely language.
func Detect(text string) Result {
	if len([]rune(text)) == 0 {
		return Result{Code: "und", Confidence: 0.1}
	}

	if r, ok := detectCJK(text); ok {
		return r
	}

	return detectByNGram(text)
}

// detectCJK implements spec.md's Unicode-range thresholds: Hangul ratio >
// 0.10 => Korean; else Kana ratio > 0.05 => Japanese; else CJK-ideograph
// ratio > 0.10 => Chinese.
func detectCJK(text string) (Result, bool) {
	runes := []rune(text)
	total := 0
	var hangul, kana, han int

	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsNumber(r) {
			continue
		}
		total++
		switch {
		case isHangul(r):
			hangul++
		case isKana(r):
			kana++
		case isHan(r):
			han++
		}
	}

	if total == 0 {
		return Result{}, false
	}

	hangulRatio := float64(hangul) / float64(total)
	kanaRatio := float64(kana) / float64(total)
	hanRatio := float64(han) / float64(total)

	switch {
	case hangulRatio > 0.10:
		return Result{Code: "ko", Confidence: clamp(0.5 + hangulRatio*0.5)}, true
	case kanaRatio > 0.05:
		return Result{Code: "ja", Confidence: clamp(0.5 + kanaRatio*2)}, true
	case hanRatio > 0.10:
		return Result{Code: "zh", Confidence: clamp(0.5 + hanRatio*0.5)}, true
	default:
		return Result{}, false
	}
}

func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7A3) || (r >= 0x1100 && r <= 0x11FF)
}

func isKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

func isHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func clamp(v float64) float64 {
	if v < 0.1 {
		return 0.1
	}
	if v > 0.99 {
		return 0.99
	}
	return v
}

// detectByNGram ranks candidate languages by trigram frequency overlap
// against a small embedded table (ISO-639-2T codes internally, mapped to
// ISO-639-1 on return), following a classic rank-order ("out-of-place")
// n-gram identification scheme. Confidence is the normalized gap between
// the best and second-best candidate's rank distance.
func detectByNGram(text string) Result {
	sample := buildTrigramRanks(text, 16)
	if len(sample) == 0 {
		return Result{Code: "en", Confidence: 0.1}
	}

	type score struct {
		code     string
		distance int
	}
	var scores []score
	for code, profile := range ngramProfiles {
		scores = append(scores, score{code: code, distance: rankDistance(sample, profile)})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].distance != scores[j].distance {
			return scores[i].distance < scores[j].distance
		}
		if (scores[i].code == "eng") != (scores[j].code == "eng") {
			return scores[i].code == "eng"
		}
		return scores[i].code < scores[j].code
	})

	if len(scores) == 0 {
		return Result{Code: "en", Confidence: 0.1}
	}
	if len(scores) == 1 {
		return Result{Code: iso6391(scores[0].code), Confidence: 0.5}
	}

	best, second := scores[0], scores[1]
	maxDistance := len(sample) * len(sample)
	gap := float64(second.distance-best.distance) / float64(maxDistance+1)
	confidence := clamp(0.4 + gap*4)

	return Result{Code: iso6391(best.code), Confidence: confidence}
}

// buildTrigramRanks returns the top-N most frequent lowercased trigrams in
// text, ordered most to least frequent (rank 0 = most frequent).
func buildTrigramRanks(text string, topN int) []string {
	counts := make(map[string]int)
	runes := []rune(normalizeForNGram(text))

	for i := 0; i+3 <= len(runes); i++ {
		tri := string(runes[i : i+3])
		counts[tri]++
	}

	type kv struct {
		tri   string
		count int
	}
	var all []kv
	for tri, c := range counts {
		all = append(all, kv{tri, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].tri < all[j].tri
	})

	if len(all) > topN {
		all = all[:topN]
	}
	out := make([]string, len(all))
	for i, e := range all {
		out[i] = e.tri
	}
	return out
}

func normalizeForNGram(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			out = append(out, ' ')
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}

// rankDistance is the classic "out-of-place" measure: for each trigram in
// sample, the distance to its rank in profile (a fixed maximum penalty when
// absent), summed.
func rankDistance(sample []string, profile []string) int {
	const maxPenalty = 64
	rank := make(map[string]int, len(profile))
	for i, tri := range profile {
		rank[tri] = i
	}

	total := 0
	for i, tri := range sample {
		if r, ok := rank[tri]; ok {
			d := r - i
			if d < 0 {
				d = -d
			}
			total += d
		} else {
			total += maxPenalty
		}
	}
	return total
}

func iso6391(code2t string) string {
	if v, ok := iso639Map[code2t]; ok {
		return v
	}
	return code2t
}

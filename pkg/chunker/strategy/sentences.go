package strategy

import (
	"unicode"
	"unicode/utf8"
)

var latinEnders = map[rune]bool{'.': true, '!': true, '?': true}
var cjkEnders = map[rune]bool{'。': true, '！': true, '？': true, '」': true, '』': true}

// isCJKLanguage reports whether an ISO-639-1 code should use CJK sentence
// boundary rules instead of Latin-script ones.
func isCJKLanguage(code string) bool {
	switch code {
	case "ko", "ja", "zh":
		return true
	default:
		return false
	}
}

// sentenceSpans splits text into sentence-terminated spans. Latin-script
// rules end a sentence at '.', '!', or '?' followed by whitespace and
// either an uppercase letter or a line break. CJK rules end a sentence
// immediately at '。', '！', '？', '」', or '』', no trailing-case check
// needed since CJK scripts have no letter case.
func sentenceSpans(text string, cjk bool) []wordSpan {
	var spans []wordSpan
	start := 0
	runes := []rune(text)
	byteIdx := make([]int, len(runes)+1)
	pos := 0
	for i, r := range runes {
		byteIdx[i] = pos
		pos += utf8.RuneLen(r)
	}
	byteIdx[len(runes)] = pos

	enders := latinEnders
	if cjk {
		enders = cjkEnders
	}

	for i := 0; i < len(runes); i++ {
		if !enders[runes[i]] {
			continue
		}
		if cjk {
			end := byteIdx[i+1]
			spans = append(spans, wordSpan{Text: text[start:end], Start: start, End: end})
			start = end
			continue
		}

		// Latin: require trailing whitespace then an uppercase letter or
		// end of text/newline to confirm a real sentence boundary.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 {
			continue // no whitespace followed the ender; not a boundary
		}
		if j >= len(runes) || unicode.IsUpper(runes[j]) || runes[i+1] == '\n' {
			end := byteIdx[j]
			spans = append(spans, wordSpan{Text: text[start:end], Start: start, End: end})
			start = end
		}
	}
	if start < len(text) {
		spans = append(spans, wordSpan{Text: text[start:], Start: start, End: len(text)})
	}
	return spans
}

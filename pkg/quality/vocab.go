package quality

// vocabulary bundles every language-dependent word list the quality engine
// needs. English and Korean variants are selected by detected language code;
// every other language falls back to English, which is the spec's own
// default when no language-specific table exists.
type vocabulary struct {
	stopWords            map[string]bool
	pronouns             map[string]bool
	referenceExpressions []string
	discourseConnectives []string
	technicalSeed        []string
	factualKeywords      []string
	crossReferenceWords  []string
	incompleteIndicators []string
}

func vocabularyFor(langCode string) vocabulary {
	if langCode == "ko" {
		return koreanVocabulary
	}
	return englishVocabulary
}

var englishVocabulary = vocabulary{
	stopWords: wordSet([]string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can",
		"had", "her", "was", "one", "our", "out", "day", "get", "has",
		"him", "his", "how", "man", "new", "now", "old", "see", "two",
		"way", "who", "boy", "did", "its", "let", "put", "say", "she",
		"too", "use", "with", "that", "this", "from", "have", "more",
		"will", "your", "what", "when", "which", "their", "there",
	}),
	pronouns: wordSet([]string{
		"it", "its", "they", "them", "their", "theirs", "this", "that",
		"these", "those", "he", "him", "his", "she", "her", "hers",
		"we", "us", "our", "ours",
	}),
	referenceExpressions: []string{
		"the above", "the following", "as mentioned", "as noted",
		"as described", "see above", "see below", "aforementioned",
		"previously", "the former", "the latter",
	},
	discourseConnectives: []string{
		"however", "therefore", "moreover", "furthermore", "consequently",
		"thus", "meanwhile", "nonetheless", "in addition", "as a result",
	},
	technicalSeed: []string{
		"algorithm", "function", "parameter", "configuration", "protocol",
		"architecture", "implementation", "interface", "specification",
		"dependency", "latency", "throughput", "schema", "endpoint",
	},
	factualKeywords: []string{
		"percent", "%", "according to", "study shows", "data indicates",
		"measured", "reported", "recorded",
	},
	crossReferenceWords: []string{
		"figure", "table", "section", "appendix", "chapter", "above",
		"below", "see also", "equation",
	},
	incompleteIndicators: []string{
		"continued", "cont'd", "...", "etc.", "and so on", "to be continued",
	},
}

var koreanVocabulary = vocabulary{
	stopWords: wordSet([]string{
		"그리고", "그러나", "하지만", "또한", "이것", "저것", "그것", "이는",
		"있다", "없다", "한다", "것은", "등의", "위해", "통해", "에서",
	}),
	pronouns: wordSet([]string{
		"그", "그녀", "그들", "이것", "저것", "그것", "우리", "저희",
	}),
	referenceExpressions: []string{
		"위에서 언급한", "앞서 설명한", "전술한", "상기", "이전에",
	},
	discourseConnectives: []string{
		"그러나", "따라서", "그러므로", "또한", "결과적으로", "한편",
	},
	technicalSeed: []string{
		"알고리즘", "함수", "매개변수", "구성", "프로토콜", "아키텍처",
		"구현", "인터페이스", "사양", "의존성",
	},
	factualKeywords: []string{
		"퍼센트", "%", "에 따르면", "연구에 따르면", "측정된", "보고된",
	},
	crossReferenceWords: []string{
		"그림", "표", "섹션", "부록", "장", "위", "아래", "참조",
	},
	incompleteIndicators: []string{
		"계속", "등등", "...", "기타 등등",
	},
}

func wordSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

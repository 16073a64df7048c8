package lang

// iso639Map maps the ISO-639-2T codes used internally by ngramProfiles to
// ISO-639-1 two-letter codes for external reporting.
var iso639Map = map[string]string{
	"eng": "en",
	"fra": "fr",
	"deu": "de",
	"spa": "es",
	"ita": "it",
	"por": "pt",
	"nld": "nl",
}

// ngramProfiles holds, for a small set of common Latin-script languages, the
// most frequent trigrams ordered by rank (most frequent first). These are
// short hand-curated seed lists, not a scraped corpus — good enough to
// separate a handful of European languages from each other when the
// Unicode-range CJK heuristic in detectCJK does not already resolve the
// text. Ties fall back to "en" since it is the default expected input for
// this pipeline.
var ngramProfiles = map[string][]string{
	"eng": {
		" th", "the", "he ", " an", "nd ", "and", "ing", " to", "to ", "er ",
		" of", "of ", " in", "in ", "ion", "tio", "ent", " co", " a ", "is ",
	},
	"fra": {
		" de", "de ", "es ", "ion", " le", "le ", "nt ", " la", "la ", "ent",
		"tio", "res", " co", "ait", " qu", "que", " un", "les", "ne ", "our",
	},
	"deu": {
		"en ", " de", "der", "die", " ei", "ich", "sch", " un", "und", "che",
		" ge", "cht", "ein", " zu", " ve", "gen", " da", "den", " be", "ng ",
	},
	"spa": {
		" de", "de ", "ión", " la", "la ", "que", " qu", "ent", " el", "el ",
		"os ", "es ", "ar ", "ado", " co", "par", " un", "nte", "ci", " en",
	},
	"ita": {
		" di", "di ", "are", " la", "la ", "to ", " il", "il ", "che", " co",
		"one", "ent", " un", " de", "zio", "re ", " pe", "per", "ion", "nte",
	},
	"por": {
		" de", "de ", "ão ", "es ", " qu", "que", " co", " a ", "ent", " do",
		"do ", "os ", "ar ", " da", "da ", "ção", " pa", " se", "com", "nte",
	},
	"nld": {
		" de", "de ", "en ", "het", " he", " va", "van", " ee", "een", "aar",
		" ge", "ing", "sch", " en", "oor", " te", "dat", " di", "die", "cht",
	},
}

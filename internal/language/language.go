package language

import "strings"

// Default is the teaching language assumed when a title names none.
const Default = "ro"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Folded word forms, Romanian and English
}

var languages = []entry{
	{"ro", "ron", "rum", "Romanian", []string{"romana", "romanian"}},
	{"en", "eng", "", "English", []string{"engleza", "english", "engl", "eng"}},
	{"fr", "fra", "fre", "French", []string{"franceza", "french", "franc"}},
	{"de", "deu", "ger", "German", []string{"germana", "german", "germ"}},
	{"it", "ita", "", "Italian", []string{"italiana", "italian"}},
	{"es", "spa", "", "Spanish", []string{"spaniola", "spanish"}},
	{"hu", "hun", "", "Hungarian", []string{"maghiara", "hungarian"}},
	{"ru", "rus", "", "Russian", []string{"rusa", "russian"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ucraineana", "ukrainian"}},
	{"pt", "por", "", "Portuguese", []string{"portugheza", "portuguese"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*3)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// FromWord returns the ISO 639-1 code for a folded word form such as
// "engleza" or "engl", or "" when the token does not name a language.
func FromWord(word string) string {
	if e, ok := byWord[word]; ok {
		return e.code2
	}
	return ""
}

// IsWord reports whether the folded token names a language.
func IsWord(word string) bool {
	_, ok := byWord[word]
	return ok
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// Effective returns code with the default teaching language filled in.
func Effective(code string) string {
	if iso := ToISO2(code); iso != "" {
		return iso
	}
	return Default
}

// Same reports whether two tags denote the same teaching language, treating
// an untagged title as taught in the default language.
func Same(a, b string) bool {
	return Effective(a) == Effective(b)
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

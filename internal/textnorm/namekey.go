package textnorm

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"admissions/internal/language"
)

// NameKey is the comparison-stable form of a program title. An empty Key
// means the title carried no usable name.
type NameKey struct {
	Key      string `json:"key"`
	Language string `json:"language,omitempty"`
}

// Valid reports whether the key carries a name.
func (k NameKey) Valid() bool {
	return k.Key != ""
}

var parenGroupPattern = regexp.MustCompile(`\([^()]*\)|\[[^\[\]]*\]`)

var abbreviations = map[string]string{
	"calc": "calculatoare",
	"inf":  "informatica",
	"info": "informatica",
	"ing":  "inginerie",
	"auto": "automatica",
	"mat":  "matematica",
	"teh":  "tehnologia",
}

var ordinalHeads = map[string]bool{
	"anul":     true,
	"an":       true,
	"editia":   true,
	"promotia": true,
	"sesiunea": true,
}

var romanNumerals = map[string]bool{
	"i": true, "ii": true, "iii": true, "iv": true, "v": true, "vi": true,
}

var philologyMarkers = map[string]bool{
	"limba":         true,
	"limbi":         true,
	"literatura":    true,
	"filologie":     true,
	"traducere":     true,
	"traductologie": true,
	"lingvistica":   true,
}

// NormalizeName reduces a program title to its NameKey. It extracts a
// teaching-language qualifier, expands abbreviations, and strips years,
// ordinals and decoration until the token list stops changing, so that
// NormalizeName(k.Key).Key == k.Key.
func NormalizeName(name string) NameKey {
	s := Normalize(name)
	lang := ""
	stripped := parenGroupPattern.ReplaceAllStringFunc(s, func(group string) string {
		for _, token := range Tokens(group) {
			if code := language.FromWord(token); code != "" && lang == "" {
				lang = code
			}
		}
		return " "
	})
	// A title made only of a bracketed group keeps its content.
	if len(Tokens(stripped)) > 0 {
		s = stripped
	}

	tokens := Tokens(s)
	for range len(tokens) + 2 {
		next, found := reduceTokens(tokens)
		if lang == "" {
			lang = found
		}
		if slices.Equal(next, tokens) {
			break
		}
		tokens = next
	}
	return NameKey{Key: strings.Join(tokens, " "), Language: lang}
}

// reduceTokens applies one pass of the name rules and returns the remaining
// tokens plus the first language it removed.
func reduceTokens(tokens []string) ([]string, string) {
	out := make([]string, 0, len(tokens))
	lang := ""
	note := func(code string) {
		if lang == "" {
			lang = code
		}
	}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		next := at(tokens, i+1)
		switch {
		case isYear(tok):
			continue
		case ordinalHeads[tok] && isOrdinal(next):
			i++
			continue
		case tok == "in" && next == "limba" && language.IsWord(at(tokens, i+2)):
			note(language.FromWord(at(tokens, i+2)))
			i += 2
			continue
		case isLanguageAbbreviation(tok):
			note(language.FromWord(tok))
			continue
		}
		if full, ok := abbreviations[tok]; ok {
			tok = full
		}
		out = append(out, tok)
	}
	for {
		n := len(out)
		if n < 2 || !language.IsWord(out[n-1]) {
			break
		}
		if n > 2 && (out[n-2] == "limba" || out[n-2] == "in") && !hasPhilologyMarker(out[:n-2]) {
			note(language.FromWord(out[n-1]))
			out = out[:n-2]
			continue
		}
		if hasPhilologyMarker(out) {
			break
		}
		note(language.FromWord(out[n-1]))
		out = out[:n-1]
	}
	return out, lang
}

func at(tokens []string, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

func isYear(tok string) bool {
	if len(tok) != 4 {
		return false
	}
	n, err := strconv.Atoi(tok)
	return err == nil && n >= 1900 && n <= 2099
}

func isOrdinal(tok string) bool {
	if romanNumerals[tok] {
		return true
	}
	_, err := strconv.Atoi(tok)
	return err == nil && len(tok) <= 2
}

// isLanguageAbbreviation matches the short forms that only ever appear as
// language markers in titles.
func isLanguageAbbreviation(tok string) bool {
	switch tok {
	case "eng", "engl":
		return true
	}
	return false
}

func hasPhilologyMarker(tokens []string) bool {
	for _, tok := range tokens {
		if philologyMarkers[tok] {
			return true
		}
	}
	return false
}

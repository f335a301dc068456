package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	mojibakeMarkers = "ÄÈÃÅ"
	// romanianLetters omits â and î: Â and â are also what a misdecoded
	// NBSP or dash turns into.
	romanianLetters = "ășțşţĂȘȚŞŢ"
)

var (
	cedillaReplacer = strings.NewReplacer("ş", "ș", "ţ", "ț", "Ş", "Ș", "Ţ", "Ț")
	nonWordPattern  = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// Clean repairs encoding damage and normalizes Unicode and whitespace while
// preserving case.
func Clean(text string) string {
	s := repairMojibake(text)
	s = norm.NFC.String(s)
	s = cedillaReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '\u200b' || r == '\ufeff' {
			return ' '
		}
		return r
	}, s)
	return collapse(s)
}

// Normalize returns the cleaned, lowercased form of text.
func Normalize(text string) string {
	// A Caser keeps state and must not be shared between goroutines.
	lower := cases.Lower(language.Romanian)
	return collapse(lower.String(Clean(text)))
}

// Fold lowercases text, strips diacritics and replaces punctuation with
// spaces. The result is suitable for keyword and token matching.
func Fold(text string) string {
	s := Normalize(text)
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(strip, s); err == nil {
		s = out
	}
	return collapse(nonWordPattern.ReplaceAllString(s, " "))
}

// Tokens returns the folded tokens of text.
func Tokens(text string) []string {
	return strings.Fields(Fold(text))
}

// JoinFragments joins text nodes collected from markup with single spaces so
// that words split across inline elements stay separated.
func JoinFragments(fragments []string) string {
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return Clean(strings.Join(parts, " "))
}

// repairMojibake reverses a UTF-8 to single-byte misdecode. Text is only
// touched when it shows a marker rune and no correctly encoded Romanian
// letter, and the repair is kept only when it yields valid UTF-8.
func repairMojibake(text string) string {
	if !strings.ContainsAny(text, mojibakeMarkers) || strings.ContainsAny(text, romanianLetters) {
		return text
	}
	buf := make([]byte, 0, len(text))
	for _, r := range text {
		if r < 0x100 {
			buf = append(buf, byte(r))
			continue
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return text
		}
		buf = append(buf, b)
	}
	if !utf8.Valid(buf) {
		return text
	}
	return string(buf)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

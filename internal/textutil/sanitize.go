package textutil

import (
	"strings"

	"admissions/internal/textnorm"
)

// SanitizeToken converts a name into a lowercase filesystem-safe token.
// Diacritics are folded and words are joined with hyphens, so
// "Facultatea de Științe" becomes "facultatea-de-stiinte". Returns "unknown"
// when nothing usable remains.
func SanitizeToken(value string) string {
	var b strings.Builder
	for _, token := range textnorm.Tokens(value) {
		token = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, token)
		if token == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteString(token)
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

package textutil

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Ratio returns 1 - distance/maxLen for the Levenshtein distance between a
// and b, measured in runes. Two empty strings score 0.
func Ratio(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	if a == b {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// TokenSortRatio is Ratio over the whitespace tokens of a and b, each sorted.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// Similarity is the larger of Ratio and TokenSortRatio. It is symmetric and
// lies in [0, 1].
func Similarity(a, b string) float64 {
	return max(Ratio(a, b), TokenSortRatio(a, b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

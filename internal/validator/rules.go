package validator

import (
	"strings"

	"admissions/internal/config"
	"admissions/internal/textnorm"
)

// Rules holds the tunable thresholds of the validator.
type Rules struct {
	Denylist             []string
	MinNameLength        int
	MaxNameLength        int
	MaxDigitRatio        float64
	MinDistinctLetters   int
	RepetitionMinLetters int
	NameOnlyConfidence   float64
	HTMLStatsConfidence  float64
	PDFStatsConfidence   float64
}

// RulesFromConfig derives Rules from the validation config section.
func RulesFromConfig(v config.Validation) Rules {
	return Rules{
		Denylist:             append([]string(nil), v.Denylist...),
		MinNameLength:        v.MinNameLength,
		MaxNameLength:        v.MaxNameLength,
		MaxDigitRatio:        v.MaxDigitRatio,
		MinDistinctLetters:   v.MinDistinctLetters,
		RepetitionMinLetters: v.RepetitionMinLetters,
		NameOnlyConfidence:   v.NameOnlyConfidence,
		HTMLStatsConfidence:  v.HTMLStatsConfidence,
		PDFStatsConfidence:   v.PDFStatsConfidence,
	}
}

// DefaultRules returns the repository defaults.
func DefaultRules() Rules {
	return RulesFromConfig(config.Default().Validation)
}

// normalized replaces out-of-range values with defaults.
func (r Rules) normalized() Rules {
	def := DefaultRules()
	if r.MinNameLength <= 0 {
		r.MinNameLength = def.MinNameLength
	}
	if r.MaxNameLength < r.MinNameLength {
		r.MaxNameLength = max(def.MaxNameLength, r.MinNameLength)
	}
	if r.MaxDigitRatio <= 0 || r.MaxDigitRatio > 1 {
		r.MaxDigitRatio = def.MaxDigitRatio
	}
	if r.MinDistinctLetters <= 0 {
		r.MinDistinctLetters = def.MinDistinctLetters
	}
	if r.RepetitionMinLetters <= 0 {
		r.RepetitionMinLetters = def.RepetitionMinLetters
	}
	if !inUnit(r.NameOnlyConfidence) {
		r.NameOnlyConfidence = def.NameOnlyConfidence
	}
	if !inUnit(r.HTMLStatsConfidence) {
		r.HTMLStatsConfidence = def.HTMLStatsConfidence
	}
	if !inUnit(r.PDFStatsConfidence) {
		r.PDFStatsConfidence = def.PDFStatsConfidence
	}
	return r
}

func inUnit(v float64) bool {
	return v > 0 && v <= 1
}

// compileDenylist folds each term into a token sequence.
func compileDenylist(terms []string) [][]string {
	out := make([][]string, 0, len(terms))
	for _, term := range terms {
		if tokens := textnorm.Tokens(term); len(tokens) > 0 {
			out = append(out, tokens)
		}
	}
	return out
}

// matchDenylist returns the first term whose tokens occur contiguously in
// tokens, or "".
func matchDenylist(denylist [][]string, tokens []string) string {
	for _, term := range denylist {
		if containsSequence(tokens, term) {
			return strings.Join(term, " ")
		}
	}
	return ""
}

func containsSequence(tokens, seq []string) bool {
	if len(seq) == 0 || len(seq) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(seq) <= len(tokens); i++ {
		for j := range seq {
			if tokens[i+j] != seq[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

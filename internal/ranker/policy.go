package ranker

import (
	"admissions/internal/config"
	"admissions/internal/textnorm"
)

// Weights are the additive score contributions of each signal.
type Weights struct {
	TargetYear   float64
	PreviousYear float64
	HighValue    float64
	LowValue     float64
	Negative     float64
}

// Policy configures a Ranker.
type Policy struct {
	Weights           Weights
	HighValueKeywords []string
	LowValueKeywords  []string
	NegativeKeywords  []string
	YearStrict        bool
}

// PolicyFromConfig derives a Policy from the ranking config section.
func PolicyFromConfig(r config.Ranking) Policy {
	return Policy{
		Weights: Weights{
			TargetYear:   r.TargetYearWeight,
			PreviousYear: r.PreviousYearWeight,
			HighValue:    r.HighValueWeight,
			LowValue:     r.LowValueWeight,
			Negative:     r.NegativeWeight,
		},
		HighValueKeywords: append([]string(nil), r.HighValueKeywords...),
		LowValueKeywords:  append([]string(nil), r.LowValueKeywords...),
		NegativeKeywords:  append([]string(nil), r.NegativeKeywords...),
		YearStrict:        r.YearStrict,
	}
}

// DefaultPolicy returns the repository defaults.
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.Default().Ranking)
}

// normalized keeps positive signals non-negative and the negative signal
// non-positive, which is what makes scoring monotonic.
func (p Policy) normalized() Policy {
	def := DefaultPolicy().Weights
	if p.Weights.TargetYear < 0 {
		p.Weights.TargetYear = def.TargetYear
	}
	if p.Weights.PreviousYear < 0 {
		p.Weights.PreviousYear = def.PreviousYear
	}
	if p.Weights.HighValue < 0 {
		p.Weights.HighValue = def.HighValue
	}
	if p.Weights.LowValue < 0 {
		p.Weights.LowValue = def.LowValue
	}
	if p.Weights.Negative > 0 {
		p.Weights.Negative = -p.Weights.Negative
	}
	return p
}

// Context is the ranking context of one faculty.
type Context struct {
	TargetYear     int
	FallbackWindow int
	Faculty        string
}

// ContextFromConfig builds a Context for faculty from the ranking section.
func ContextFromConfig(r config.Ranking, faculty string) Context {
	return Context{TargetYear: r.TargetYear, FallbackWindow: r.YearFallbackWindow, Faculty: faculty}
}

type keywordSet [][]string

func compileKeywords(terms []string) keywordSet {
	out := make(keywordSet, 0, len(terms))
	for _, term := range terms {
		if tokens := textnorm.Tokens(term); len(tokens) > 0 {
			out = append(out, tokens)
		}
	}
	return out
}

// matches reports whether any keyword occurs as a contiguous run of tokens,
// each keyword token matching a prefix of the text token ("ghid" matches
// "ghidul").
func (k keywordSet) matches(tokens []string) bool {
	for _, kw := range k {
		if hasPrefixSequence(tokens, kw) {
			return true
		}
	}
	return false
}

func hasPrefixSequence(tokens, seq []string) bool {
	if len(seq) == 0 || len(seq) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(seq) <= len(tokens); i++ {
		for j, want := range seq {
			tok := tokens[i+j]
			if len(tok) < len(want) || tok[:len(want)] != want {
				continue outer
			}
		}
		return true
	}
	return false
}

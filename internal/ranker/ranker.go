package ranker

import (
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"admissions/internal/evidence"
	"admissions/internal/textnorm"
)

var digitRun = regexp.MustCompile(`\d+`)

// Breakdown is the per-signal score of one candidate.
type Breakdown struct {
	TargetYear   float64 `json:"target_year"`
	PreviousYear float64 `json:"previous_year"`
	HighValue    float64 `json:"high_value"`
	LowValue     float64 `json:"low_value"`
	Negative     float64 `json:"negative"`
	YearMatched  bool    `json:"year_matched"`
	Total        float64 `json:"total"`
}

// Ranker scores and orders PDF candidates. It holds no mutable state.
type Ranker struct {
	policy Policy
	high   keywordSet
	low    keywordSet
	neg    keywordSet
}

// New builds a Ranker from p.
func New(p Policy) *Ranker {
	p = p.normalized()
	return &Ranker{
		policy: p,
		high:   compileKeywords(p.HighValueKeywords),
		low:    compileKeywords(p.LowValueKeywords),
		neg:    compileKeywords(p.NegativeKeywords),
	}
}

// Score returns the additive score of c in ctx.
func (r *Ranker) Score(c evidence.PDFCandidate, ctx Context) Breakdown {
	text := signalText(c)
	tokens := strings.Fields(text)
	years := yearTokens(text)
	w := r.policy.Weights

	var b Breakdown
	if years[ctx.TargetYear] {
		b.TargetYear = w.TargetYear
		b.YearMatched = true
	}
	for y := ctx.TargetYear - ctx.FallbackWindow; y < ctx.TargetYear; y++ {
		if years[y] {
			b.PreviousYear = w.PreviousYear
			break
		}
	}
	if r.high.matches(tokens) {
		b.HighValue = w.HighValue
	}
	if r.low.matches(tokens) {
		b.LowValue = w.LowValue
	}
	if r.neg.matches(tokens) {
		b.Negative = w.Negative
	}
	b.Total = b.TargetYear + b.PreviousYear + b.HighValue + b.LowValue + b.Negative
	return b
}

// Rank returns a new slice with every candidate scored, annotated and
// ordered best first. The input is not modified.
func (r *Ranker) Rank(candidates []evidence.PDFCandidate, ctx Context) []evidence.PDFCandidate {
	type scored struct {
		cand      evidence.PDFCandidate
		breakdown Breakdown
	}
	items := make([]scored, len(candidates))
	for i, c := range candidates {
		b := r.Score(c, ctx)
		text := signalText(c)
		c.Score = b.Total
		c.Ranked = true
		c.DocType = docTypeOfFolded(text)
		c.YearSignal = yearSignal(yearTokens(text), ctx.TargetYear)
		items[i] = scored{cand: c, breakdown: b}
	}
	strict := r.policy.YearStrict
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].breakdown, items[j].breakdown
		if strict && a.YearMatched != b.YearMatched {
			return a.YearMatched
		}
		return a.Total > b.Total
	})
	out := make([]evidence.PDFCandidate, len(items))
	for i, it := range items {
		out[i] = it.cand
	}
	return out
}

// YearSignal returns the year a document refers to: the target year when
// present, otherwise the latest year mentioned, or nil.
func YearSignal(c evidence.PDFCandidate, target int) *int {
	return yearSignal(yearTokens(signalText(c)), target)
}

// DocTypeOf classifies a document from its link text and URL.
func DocTypeOf(c evidence.PDFCandidate) evidence.DocType {
	return docTypeOfFolded(signalText(c))
}

func signalText(c evidence.PDFCandidate) string {
	parts := []string{c.LinkText}
	if c.AnchorText != nil && *c.AnchorText != c.LinkText {
		parts = append(parts, *c.AnchorText)
	}
	parts = append(parts, c.DocumentURL())
	return textnorm.Fold(strings.Join(parts, " "))
}

// yearTokens collects four-digit runs between 1900 and 2099. Runs are
// delimited by non-digits, so "cifra2026" yields 2026 but "120261" does not.
func yearTokens(text string) map[int]bool {
	years := make(map[int]bool)
	for _, run := range digitRun.FindAllString(text, -1) {
		if len(run) != 4 {
			continue
		}
		if y, err := strconv.Atoi(run); err == nil && y >= 1900 && y <= 2099 {
			years[y] = true
		}
	}
	return years
}

func yearSignal(years map[int]bool, target int) *int {
	if years[target] {
		return evidence.Int(target)
	}
	if len(years) == 0 {
		return nil
	}
	all := make([]int, 0, len(years))
	for y := range years {
		all = append(all, y)
	}
	return evidence.Int(slices.Max(all))
}

var docTypeKeywords = []struct {
	docType evidence.DocType
	words   keywordSet
}{
	{evidence.DocSpots, compileKeywords([]string{"cifra", "locuri", "capacitate", "scolarizare"})},
	{evidence.DocResults, compileKeywords([]string{"rezultate", "medii", "admisi", "respinsi", "ierarhie", "clasament"})},
	{evidence.DocExam, compileKeywords([]string{"tematica", "subiecte", "grile", "bibliografie"})},
	{evidence.DocCalendar, compileKeywords([]string{"calendar", "programare", "perioada"})},
	{evidence.DocGuide, compileKeywords([]string{"ghid", "metodologie", "metodologia", "regulament"})},
}

func docTypeOfFolded(text string) evidence.DocType {
	tokens := strings.Fields(text)
	for _, entry := range docTypeKeywords {
		if entry.words.matches(tokens) {
			return entry.docType
		}
	}
	return evidence.DocUnknown
}

package validator

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"admissions/internal/evidence"
)

var (
	// statLabel matches a budget (group 1) or fee (group 2) label, optionally
	// preceded by "locuri", "locuri la" or "locuri cu".
	statLabel  = regexp.MustCompile(`(?i)(?:\blocuri\s+(?:la\s+|cu\s+)?)?(?:\b((?:buget|budget)\p{L}*)|\b(tax\p{L}*|fee\p{L}*|(?:cu\s+)?plat\p{L}*))`)
	statNumber = regexp.MustCompile(`\d+`)

	// forwardGap is the text allowed between a number and the label after it
	// ("30 de locuri la buget"). Commas end the statistic.
	forwardGap = regexp.MustCompile(`(?i)^[\s.\-–]*(?:de\s+)?(?:(?:locuri|loc)\b[\s.\-–]*)?(?:(?:la|de|pe|cu|în|in)\s+)?$`)
	// reverseGap is the text allowed between a label and the number after it
	// ("buget: 30", "buget 30").
	reverseGap = regexp.MustCompile(`^\s*[:=]?\s*$`)

	// pdfColumns reads two trailing integers as budget and fee columns.
	pdfColumns = regexp.MustCompile(`(\d+)[\s|;,]+(\d+)\s*$`)
	// pdfRowIndex matches a leading row number such as "12." or "3)".
	pdfRowIndex = regexp.MustCompile(`^\s*\d{1,3}[.)]?\s+(\p{L})`)
)

type span struct{ start, end int }

type statMatch struct {
	field evidence.Field
	value int
	whole span
}

type extraction struct {
	name   string
	rest   string
	budget *int
	fee    *int
}

func (e extraction) hasStats() bool {
	return e.budget != nil || e.fee != nil
}

// statItem is a number or a label found in candidate text. For labels,
// core is where the budget or fee word itself starts.
type statItem struct {
	span
	core  int
	label bool
	field evidence.Field
	value int
}

// statEdge pairs a number with an adjacent label. Forward edges read the
// number first. Strong edges carry words ("locuri la") or an explicit ":"
// between the two.
type statEdge struct {
	num, label int
	forward    bool
	strong     bool
	whole      span
}

// extract splits cleaned candidate text into a display name and inline
// budget/fee statistics.
func extract(kind evidence.SourceKind, cleaned string) extraction {
	if kind.IsPDF() {
		if m := pdfRowIndex.FindStringSubmatchIndex(cleaned); m != nil {
			cleaned = cleaned[m[2]:]
		}
	}

	chosen := pairStatistics(cleaned)

	if len(chosen) == 0 && kind.IsPDF() {
		if m := pdfColumns.FindStringSubmatchIndex(cleaned); m != nil {
			budget, errB := strconv.Atoi(cleaned[m[2]:m[3]])
			fee, errF := strconv.Atoi(cleaned[m[4]:m[5]])
			if errB == nil && errF == nil {
				whole := span{m[0], m[1]}
				chosen = append(chosen,
					statMatch{field: evidence.FieldBudget, value: budget, whole: whole},
					statMatch{field: evidence.FieldFee, value: fee, whole: whole},
				)
			}
		}
	}

	out := extraction{}
	spans := make([]span, 0, len(chosen))
	for _, m := range chosen {
		switch m.field {
		case evidence.FieldBudget:
			out.budget = evidence.Int(m.value)
		case evidence.FieldFee:
			out.fee = evidence.Int(m.value)
		}
		spans = append(spans, m.whole)
	}
	segments := segmentsOutside(cleaned, spans)
	out.name = firstName(segments)
	out.rest = strings.Join(segments, " ")
	return out
}

// pairStatistics binds every number to at most one neighbouring label and
// every label to at most one number. Strong pairs win first; the remaining
// bare pairs follow the reading direction that binds the most of them, so
// "buget 30 taxă 5" and "30 buget 5 taxă" both read as budget 30, fee 5.
func pairStatistics(text string) []statMatch {
	items := statItems(text)
	var edges []statEdge
	for i := 0; i+1 < len(items); i++ {
		a, b := items[i], items[i+1]
		switch {
		case !a.label && b.label:
			gap := text[a.end:b.core]
			if forwardGap.MatchString(gap) {
				edges = append(edges, statEdge{num: i, label: i + 1, forward: true, strong: hasLetter(gap), whole: span{a.start, b.end}})
			}
		case a.label && !b.label:
			gap := text[a.end:b.start]
			if reverseGap.MatchString(gap) {
				edges = append(edges, statEdge{num: i + 1, label: i, strong: strings.ContainsAny(gap, ":="), whole: span{a.start, b.end}})
			}
		}
	}

	used := map[int]bool{}
	var picked []statEdge
	take := func(e statEdge) bool {
		if used[e.num] || used[e.label] {
			return false
		}
		used[e.num], used[e.label] = true, true
		picked = append(picked, e)
		return true
	}

	strongForward, strongReverse := 0, 0
	for _, e := range edges {
		if e.strong && take(e) {
			if e.forward {
				strongForward++
			} else {
				strongReverse++
			}
		}
	}

	// count simulates binding the bare edges of one direction.
	count := func(forward bool) int {
		taken := make(map[int]bool, len(used))
		for k, v := range used {
			taken[k] = v
		}
		n := 0
		for _, e := range edges {
			if !e.strong && e.forward == forward && !taken[e.num] && !taken[e.label] {
				taken[e.num], taken[e.label] = true, true
				n++
			}
		}
		return n
	}
	fwd, rev := count(true), count(false)
	forward := fwd > rev
	if fwd == rev {
		switch {
		case strongForward != strongReverse:
			forward = strongForward > strongReverse
		case len(items) > 0:
			forward = !items[0].label
		}
	}
	for _, pass := range []bool{forward, !forward} {
		for _, e := range edges {
			if !e.strong && e.forward == pass {
				take(e)
			}
		}
	}

	sort.Slice(picked, func(i, j int) bool { return picked[i].whole.start < picked[j].whole.start })
	seen := map[evidence.Field]bool{}
	out := make([]statMatch, 0, 2)
	for _, e := range picked {
		field := items[e.label].field
		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, statMatch{field: field, value: items[e.num].value, whole: e.whole})
	}
	return out
}

func statItems(text string) []statItem {
	var items []statItem
	for _, m := range statLabel.FindAllStringSubmatchIndex(text, -1) {
		item := statItem{span: span{m[0], m[1]}, label: true}
		if m[2] >= 0 {
			item.field, item.core = evidence.FieldBudget, m[2]
		} else {
			item.field, item.core = evidence.FieldFee, m[4]
		}
		items = append(items, item)
	}
	for _, m := range statNumber.FindAllStringIndex(text, -1) {
		if overlaps(items, m[0]) {
			continue
		}
		value, err := strconv.Atoi(text[m[0]:m[1]])
		if err != nil {
			continue
		}
		items = append(items, statItem{span: span{m[0], m[1]}, value: value})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].start < items[j].start })
	return items
}

func overlaps(items []statItem, pos int) bool {
	for _, it := range items {
		if it.label && pos >= it.start && pos < it.end {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

const nameTrim = " \t-–—:,.;|/"

// segmentsOutside returns the text segments not covered by spans.
func segmentsOutside(text string, spans []span) []string {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	pos := 0
	segments := make([]string, 0, len(spans)+1)
	for _, s := range spans {
		if s.start > pos {
			segments = append(segments, text[pos:s.start])
		}
		pos = max(pos, s.end)
	}
	if pos < len(text) {
		segments = append(segments, text[pos:])
	}
	return segments
}

// firstName returns the first non-empty segment, cut at the first ";" or "|".
func firstName(segments []string) string {
	for _, seg := range segments {
		if i := strings.IndexAny(seg, ";|"); i >= 0 && trimName(seg[:i]) != "" {
			seg = seg[:i]
		}
		if name := trimName(seg); name != "" {
			return name
		}
	}
	return ""
}

// trimName strips separators and brackets left open by a removed statistic,
// then closes any bracket the name itself still opens.
func trimName(s string) string {
	for {
		t := strings.Trim(s, nameTrim)
		t = strings.TrimRight(t, "([{")
		t = strings.TrimLeft(t, ")]}")
		if t == s {
			break
		}
		s = t
	}
	for _, pair := range [...]string{"()", "[]"} {
		open, closing := pair[:1], pair[1:]
		if n := strings.Count(s, open) - strings.Count(s, closing); n > 0 {
			s += strings.Repeat(closing, n)
		}
	}
	return s
}

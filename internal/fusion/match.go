package fusion

import (
	"admissions/internal/evidence"
	"admissions/internal/language"
	"admissions/internal/textutil"
)

// candidate is an eligible row and its similarity to the entity.
type candidate struct {
	index      int
	similarity float64
}

// match is the outcome of matching one entity against the ranked rows.
type match struct {
	primary    *candidate
	alternates []candidate
	// best is the highest similarity seen among context-compatible rows,
	// including those below the threshold.
	best float64
}

// eligible reports whether row may serve as evidence for e. Similarity alone
// never crosses a level, faculty or language boundary.
func eligible(e evidence.Entity, row *evidence.Entity) bool {
	if row == nil || row.Type != evidence.TypeProgram {
		return false
	}
	return row.Level == e.Level &&
		row.Faculty == e.Faculty &&
		language.Same(row.Language, e.Language)
}

// Similarity scores two name keys in [0, 1].
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return textutil.Similarity(a, b)
}

// findMatch selects the primary row: the first eligible document in ranked
// order, and within that document the most similar row (earliest on ties).
func (e *Engine) findMatch(ent evidence.Entity, rows []evidence.PDFCandidate) match {
	var m match
	var qualifying []candidate
	for i, row := range rows {
		if !eligible(ent, row.Row) {
			continue
		}
		sim := Similarity(ent.Key, row.Row.Key)
		m.best = max(m.best, sim)
		if sim >= e.policy.SimilarityThreshold {
			qualifying = append(qualifying, candidate{index: i, similarity: sim})
		}
	}
	if len(qualifying) == 0 {
		return m
	}

	doc := rows[qualifying[0].index].DocumentURL()
	primary := qualifying[0]
	for _, q := range qualifying[1:] {
		if rows[q.index].DocumentURL() == doc && q.similarity > primary.similarity {
			primary = q
		}
	}
	m.primary = &primary
	for _, q := range qualifying {
		if q.index != primary.index {
			m.alternates = append(m.alternates, q)
		}
	}
	return m
}

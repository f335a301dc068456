package fusion

import "admissions/internal/evidence"

// Merged is one entity after duplicate collapsing, with the values that lost
// while merging.
type Merged struct {
	Entity     evidence.Entity
	Alternates []evidence.AlternateValue
	Conflict   bool
}

// MergeDuplicates collapses entities that share an identifier, keeping the
// first occurrence's position. Source URLs are unioned, null fields are
// filled, and disagreeing values go to Alternates with the higher-confidence
// value kept (the earlier one on ties).
func MergeDuplicates(entities []evidence.Entity) []Merged {
	out := make([]Merged, 0, len(entities))
	index := make(map[evidence.ID]int, len(entities))
	for _, ent := range entities {
		pos, seen := index[ent.ID]
		if !seen {
			index[ent.ID] = len(out)
			out = append(out, Merged{Entity: ent.Clone()})
			continue
		}
		out[pos].absorb(ent)
	}
	return out
}

func (m *Merged) absorb(other evidence.Entity) {
	base := m.Entity
	otherWins := other.Confidence > base.Confidence
	m.mergeField(evidence.FieldBudget, &m.Entity.Budget, other.Budget, other, otherWins)
	m.mergeField(evidence.FieldFee, &m.Entity.Fee, other.Fee, other, otherWins)
	for _, url := range other.SourceURLs {
		m.Entity.SourceURLs = appendUnique(m.Entity.SourceURLs, url)
	}
	if m.Entity.RawText == nil && other.RawText != nil {
		m.Entity.RawText = evidence.Str(*other.RawText)
	}
	if other.Source == evidence.SourcePDF {
		m.Entity.Source = evidence.SourcePDF
	}
	m.Entity.Confidence = max(base.Confidence, other.Confidence)
}

func (m *Merged) mergeField(name evidence.Field, dst **int, value *int, other evidence.Entity, otherWins bool) {
	switch {
	case value == nil:
		return
	case *dst == nil:
		*dst = evidence.Int(*value)
	case **dst == *value:
		return
	case otherWins:
		m.Conflict = true
		m.Alternates = append(m.Alternates, evidence.AlternateValue{
			Field:      name,
			Value:      **dst,
			Source:     m.Entity.ID,
			SourceURL:  m.Entity.PrimaryURL(),
			Confidence: m.Entity.Confidence,
		})
		*dst = evidence.Int(*value)
	default:
		m.Conflict = true
		m.Alternates = append(m.Alternates, evidence.AlternateValue{
			Field:      name,
			Value:      *value,
			Source:     other.ID,
			SourceURL:  other.PrimaryURL(),
			Confidence: other.Confidence,
		})
	}
}

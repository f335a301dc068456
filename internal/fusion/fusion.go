package fusion

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"admissions/internal/evidence"
	"admissions/internal/logging"
)

// ErrContractViolation is the panic value (wrapped) raised when an entity
// reaches fusion without the identity or provenance validation guarantees.
var ErrContractViolation = errors.New("fusion: contract violation")

// Engine fuses entities with ranked PDF rows.
type Engine struct {
	policy Policy
	logger *slog.Logger
}

// New builds an Engine. A nil logger discards match logs.
func New(p Policy, logger *slog.Logger) *Engine {
	return &Engine{
		policy: p.normalized(),
		logger: logging.NewComponentLogger(logger, "fusion"),
	}
}

// Threshold returns the similarity threshold in effect.
func (e *Engine) Threshold() float64 {
	return e.policy.SimilarityThreshold
}

// Fuse returns exactly one result per entity, in input order. rows must be
// in ranked order (best first); Fuse does not re-rank them.
func (e *Engine) Fuse(entities []evidence.Entity, rows []evidence.PDFCandidate) []evidence.FusionResult {
	results := make([]evidence.FusionResult, len(entities))
	for i, ent := range entities {
		checkContract(ent)
		results[i] = e.fuseOne(ent, rows)
	}
	return results
}

func checkContract(ent evidence.Entity) {
	if ent.ID == "" {
		panic(fmt.Errorf("%w: entity %q has no identifier", ErrContractViolation, ent.Name))
	}
	if strings.TrimSpace(ent.PrimaryURL()) == "" {
		panic(fmt.Errorf("%w: entity %s has no source url", ErrContractViolation, ent.ID))
	}
}

func (e *Engine) fuseOne(ent evidence.Entity, rows []evidence.PDFCandidate) evidence.FusionResult {
	result := evidence.FusionResult{
		Entity:  ent.Clone(),
		Sources: []evidence.ID{ent.ID},
	}
	if ent.Type != evidence.TypeProgram || ent.Source == evidence.SourcePDF {
		return result
	}

	m := e.findMatch(ent, rows)
	if m.primary == nil {
		e.logger.Debug("entity unmatched",
			logging.String(logging.FieldReason, string(evidence.ReasonBelowThreshold)),
			logging.String("entity", string(ent.ID)),
			logging.String("key", ent.Key),
			logging.Float64("best_similarity", m.best),
			logging.String(logging.FieldFaculty, ent.Faculty),
		)
		return result
	}

	primaryRow := rows[m.primary.index]
	result.Match = &evidence.MatchInfo{
		Row:         primaryRow.Row.ID,
		Label:       primaryRow.Row.Name,
		Similarity:  m.primary.similarity,
		DocumentURL: primaryRow.DocumentURL(),
		RankScore:   primaryRow.Score,
	}
	for _, alt := range m.alternates {
		result.AlternateRows = append(result.AlternateRows, rows[alt.index].Row.ID)
	}

	arb := arbiter{
		entity:    ent,
		row:       *primaryRow.Row,
		rowURL:    primaryRow.DocumentURL(),
		conflicts: &result.Alternates,
	}
	arb.field(evidence.FieldBudget, &result.Entity.Budget, ent.Budget, primaryRow.Row.Budget)
	arb.field(evidence.FieldFee, &result.Entity.Fee, ent.Fee, primaryRow.Row.Fee)

	result.Conflict = arb.conflict
	if arb.contributed {
		result.Entity.Confidence = max(ent.Confidence, primaryRow.Row.Confidence)
		result.Sources = append(result.Sources, primaryRow.Row.ID)
		result.Entity.SourceURLs = appendUnique(result.Entity.SourceURLs, primaryRow.DocumentURL())
	}
	if arb.pdfKept {
		result.Entity.Source = evidence.SourcePDF
	}
	if result.Conflict {
		e.logger.Info("conflicting evidence",
			logging.String(logging.FieldReason, string(evidence.ReasonConflict)),
			logging.String("entity", string(ent.ID)),
			logging.String("row", string(primaryRow.Row.ID)),
			logging.Int("alternates", len(result.Alternates)),
			logging.String(logging.FieldFaculty, ent.Faculty),
		)
	}
	return result
}

// arbiter applies the per-field upgrade rules for one entity and its primary
// row.
type arbiter struct {
	entity    evidence.Entity
	row       evidence.Entity
	rowURL    string
	conflicts *[]evidence.AlternateValue

	contributed bool
	pdfKept     bool
	conflict    bool
}

func (a *arbiter) field(name evidence.Field, dst **int, prior, pdf *int) {
	switch {
	case pdf == nil:
		return
	case prior == nil:
		*dst = evidence.Int(*pdf)
		a.contributed = true
		a.pdfKept = true
	case *prior == *pdf:
		a.contributed = true
		a.pdfKept = true
	default:
		a.conflict = true
		a.contributed = true
		if a.row.Confidence >= a.entity.Confidence {
			*dst = evidence.Int(*pdf)
			a.pdfKept = true
			*a.conflicts = append(*a.conflicts, evidence.AlternateValue{
				Field:      name,
				Value:      *prior,
				Source:     a.entity.ID,
				SourceURL:  a.entity.PrimaryURL(),
				Confidence: a.entity.Confidence,
			})
			return
		}
		*a.conflicts = append(*a.conflicts, evidence.AlternateValue{
			Field:      name,
			Value:      *pdf,
			Source:     a.row.ID,
			SourceURL:  a.rowURL,
			Confidence: a.row.Confidence,
		})
	}
}

func appendUnique(urls []string, url string) []string {
	for _, u := range urls {
		if u == url {
			return urls
		}
	}
	return append(urls, url)
}

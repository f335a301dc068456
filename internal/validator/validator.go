package validator

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"admissions/internal/evidence"
	"admissions/internal/identity"
	"admissions/internal/logging"
	"admissions/internal/textnorm"
)

// Decision is the outcome of classifying one candidate. Exactly one of the
// three verdicts is set; Entity is non-nil only for ACCEPT.
type Decision struct {
	Verdict   evidence.Verdict
	Reason    evidence.ReasonCode
	Stage     evidence.Stage
	Detail    string
	Candidate evidence.RawCandidate
	Entity    *evidence.Entity
	// PDF is the validated row for pdf-row candidates, or an unranked stub
	// for a document linked next to an HTML entry.
	PDF *evidence.PDFCandidate
}

// Accepted reports whether the decision admitted the candidate.
func (d Decision) Accepted() bool {
	return d.Verdict == evidence.Accept
}

// Record returns the audit record for a REJECT or QUARANTINE decision.
func (d Decision) Record(runID string) (evidence.QuarantineRecord, bool) {
	if d.Accepted() {
		return evidence.QuarantineRecord{}, false
	}
	return evidence.QuarantineRecord{
		Text:      d.Candidate.Text,
		Verdict:   d.Verdict,
		Reason:    d.Reason,
		Stage:     d.Stage,
		Detail:    d.Detail,
		SourceURL: d.Candidate.SourceURL,
		Kind:      d.Candidate.Kind,
		Position:  d.Candidate.Position,
		RunID:     runID,
	}, true
}

// Validator classifies raw candidates. It is safe for concurrent use.
type Validator struct {
	rules    Rules
	denylist [][]string
	resolver identity.Resolver
	logger   *slog.Logger
	runID    string
}

// New builds a Validator. A nil logger discards decision logs.
func New(rules Rules, resolver identity.Resolver, logger *slog.Logger) *Validator {
	rules = rules.normalized()
	return &Validator{
		rules:    rules,
		denylist: compileDenylist(rules.Denylist),
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "validator"),
	}
}

// WithRunID returns a copy that stamps accepted entities with runID.
func (v *Validator) WithRunID(runID string) *Validator {
	clone := *v
	clone.runID = runID
	clone.logger = v.logger.With(logging.String(logging.FieldRunID, runID))
	return &clone
}

// Classify runs the structural, noise, plausibility and statistics stages in
// order and returns the first decisive outcome.
func (v *Validator) Classify(c evidence.RawCandidate) Decision {
	cleaned := textnorm.Clean(c.Text)
	ext := extract(c.Kind, cleaned)

	if ext.name == "" {
		return v.quarantine(c, evidence.ReasonMissingField, evidence.StageStructural, "empty name")
	}
	// The denylist sees every segment outside the statistics, not only the
	// name, so a term spanning a ";" or "|" cut still matches.
	if term := matchDenylist(v.denylist, textnorm.Tokens(ext.rest)); term != "" {
		return v.reject(c, term)
	}
	// A denylisted name is noise even without a URL, so the URL half of the
	// structural check runs after the noise stage.
	if strings.TrimSpace(c.SourceURL) == "" {
		return v.quarantine(c, evidence.ReasonMissingField, evidence.StageStructural, "missing source url")
	}
	if detail := v.implausible(ext.name); detail != "" {
		return v.quarantine(c, evidence.ReasonImplausible, evidence.StagePlausibility, detail)
	}
	key := textnorm.NormalizeName(ext.name)
	if !key.Valid() {
		return v.quarantine(c, evidence.ReasonImplausible, evidence.StagePlausibility, "empty name key")
	}

	entity := v.build(c, ext, key)
	decision := Decision{
		Verdict:   evidence.Accept,
		Stage:     evidence.StageStatistics,
		Candidate: c,
		Entity:    &entity,
	}
	switch {
	case c.Kind.IsPDF():
		row := entity.Clone()
		decision.PDF = &evidence.PDFCandidate{RawCandidate: c, LinkText: deref(c.AnchorText), Row: &row}
	case c.PDFLink != nil && strings.TrimSpace(*c.PDFLink) != "":
		decision.PDF = &evidence.PDFCandidate{RawCandidate: c, LinkText: deref(c.AnchorText)}
	}
	return decision
}

func (v *Validator) implausible(name string) string {
	length := len([]rune(name))
	if length < v.rules.MinNameLength || length > v.rules.MaxNameLength {
		return fmt.Sprintf("length %d outside [%d, %d]", length, v.rules.MinNameLength, v.rules.MaxNameLength)
	}
	var letters, digits, counted int
	distinct := make(map[rune]struct{})
	for _, r := range textnorm.Fold(name) {
		switch {
		case unicode.IsLetter(r):
			letters++
			distinct[r] = struct{}{}
		case unicode.IsDigit(r):
			digits++
		}
		if !unicode.IsSpace(r) {
			counted++
		}
	}
	if letters == 0 {
		return "no letters"
	}
	if ratio := float64(digits) / float64(counted); ratio > v.rules.MaxDigitRatio {
		return fmt.Sprintf("digit ratio %.2f above %.2f", ratio, v.rules.MaxDigitRatio)
	}
	if letters >= v.rules.RepetitionMinLetters && len(distinct) < v.rules.MinDistinctLetters {
		return fmt.Sprintf("only %d distinct letters", len(distinct))
	}
	return ""
}

func (v *Validator) build(c evidence.RawCandidate, ext extraction, key textnorm.NameKey) evidence.Entity {
	source := evidence.SourceHTML
	if c.Kind.IsPDF() {
		source = evidence.SourcePDF
	}
	confidence := v.rules.NameOnlyConfidence
	if ext.hasStats() {
		confidence = v.rules.HTMLStatsConfidence
		if c.Kind.IsPDF() {
			confidence = v.rules.PDFStatsConfidence
		}
	}
	level := c.Level
	if level == "" {
		level = evidence.LevelUnknown
	}
	entityType := evidence.TypeProgram
	if strings.HasPrefix(key.Key, "facultatea ") {
		entityType = evidence.TypeFaculty
	}
	var facultyID evidence.ID
	if strings.TrimSpace(c.Faculty) != "" {
		facultyID = identity.Faculty(c.Faculty)
	}
	return evidence.Entity{
		ID:         v.resolver.Resolve(c.SourceURL, ext.name),
		Type:       entityType,
		Name:       ext.name,
		Key:        key.Key,
		Language:   key.Language,
		Level:      level,
		Faculty:    c.Faculty,
		FacultyID:  facultyID,
		Budget:     ext.budget,
		Fee:        ext.fee,
		RawText:    evidence.Str(c.Text),
		Source:     source,
		Confidence: confidence,
		SourceURLs: []string{c.SourceURL},
		RunID:      v.runID,
	}
}

func (v *Validator) reject(c evidence.RawCandidate, term string) Decision {
	d := Decision{
		Verdict:   evidence.Reject,
		Reason:    evidence.ReasonNoise,
		Stage:     evidence.StageNoise,
		Detail:    "denylist term " + term,
		Candidate: c,
	}
	v.log("candidate rejected", d)
	return d
}

func (v *Validator) quarantine(c evidence.RawCandidate, reason evidence.ReasonCode, stage evidence.Stage, detail string) Decision {
	d := Decision{
		Verdict:   evidence.Quarantine,
		Reason:    reason,
		Stage:     stage,
		Detail:    detail,
		Candidate: c,
	}
	v.log("candidate quarantined", d)
	return d
}

func (v *Validator) log(msg string, d Decision) {
	attrs := logging.DecisionAttrs(string(d.Verdict), string(d.Reason), string(d.Stage))
	attrs = append(attrs,
		logging.String("detail", d.Detail),
		logging.String("text", truncate(d.Candidate.Text, 80)),
		logging.String(logging.FieldSourceURL, d.Candidate.SourceURL),
		logging.String("kind", string(d.Candidate.Kind)),
		logging.Int("position", d.Candidate.Position),
	)
	if d.Candidate.Faculty != "" {
		attrs = append(attrs, logging.String(logging.FieldFaculty, d.Candidate.Faculty))
	}
	v.logger.Info(msg, logging.Args(attrs...)...)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

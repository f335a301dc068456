package evidence

import "strings"

// ID is a composite, deterministic entity identifier.
type ID string

// SourceKind identifies the extraction lane a candidate came from.
type SourceKind string

const (
	KindHTMLListItem  SourceKind = "html-list-item"
	KindHTMLTextBlock SourceKind = "html-text-block"
	KindPDFRow        SourceKind = "pdf-row"
)

// IsPDF reports whether the kind belongs to the PDF lane.
func (k SourceKind) IsPDF() bool {
	return k == KindPDFRow
}

// EntityType distinguishes faculty records from program records.
type EntityType string

const (
	TypeFaculty EntityType = "faculty"
	TypeProgram EntityType = "program"
)

// SourceType tags where an entity's final numeric values came from.
type SourceType string

const (
	SourceHTML SourceType = "html"
	SourcePDF  SourceType = "pdf"
)

// Level is the study cycle of a program.
type Level string

const (
	LevelUnknown  Level = "unknown"
	LevelBachelor Level = "bachelor"
	LevelMaster   Level = "master"
	LevelPhD      Level = "phd"
)

// ParseLevel maps Romanian and English spellings onto a Level.
func ParseLevel(value string) Level {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.NewReplacer("ț", "t", "ţ", "t", "ă", "a", "â", "a", "î", "i").Replace(v)
	switch {
	case v == "":
		return LevelUnknown
	case strings.Contains(v, "licenta"), strings.Contains(v, "bachelor"), v == "lic", v == "bsc":
		return LevelBachelor
	case strings.Contains(v, "doctorat"), v == "phd", strings.Contains(v, "doctoral"):
		return LevelPhD
	case strings.Contains(v, "master"), v == "msc":
		return LevelMaster
	default:
		return LevelUnknown
	}
}

// UnmarshalText lets bundles spell levels the way institutions do.
func (l *Level) UnmarshalText(text []byte) error {
	*l = ParseLevel(string(text))
	return nil
}

// RawCandidate is one unvalidated piece of text extracted from a page or a
// PDF page. It is created once per extraction pass and never mutated.
type RawCandidate struct {
	Kind      SourceKind `json:"kind" yaml:"kind"`
	Text      string     `json:"text" yaml:"text"`
	SourceURL string     `json:"source_url" yaml:"source_url"`
	Position  int        `json:"position" yaml:"position"`
	// PDFLink is a document link found next to the text (HTML lanes).
	PDFLink *string `json:"pdf_link,omitempty" yaml:"pdf_link,omitempty"`
	// AnchorText is the link text used when the PDF was discovered.
	AnchorText *string `json:"anchor_text,omitempty" yaml:"anchor_text,omitempty"`
	Faculty    string  `json:"faculty" yaml:"faculty"`
	Level      Level   `json:"level" yaml:"level"`
}

// Entity is a validated program or faculty record.
type Entity struct {
	ID         ID         `json:"id"`
	Type       EntityType `json:"type"`
	Name       string     `json:"name"`
	Key        string     `json:"key"`
	Language   string     `json:"language,omitempty"`
	Level      Level      `json:"level"`
	Faculty    string     `json:"faculty"`
	FacultyID  ID         `json:"faculty_id"`
	Budget     *int       `json:"budget"`
	Fee        *int       `json:"fee"`
	RawText    *string    `json:"raw_text"`
	Source     SourceType `json:"source"`
	Confidence float64    `json:"confidence"`
	SourceURLs []string   `json:"source_urls"`
	RunID      string     `json:"run_id"`
}

// Clone returns a deep copy so callers can upgrade fields without aliasing
// the original record.
func (e Entity) Clone() Entity {
	out := e
	out.Budget = cloneInt(e.Budget)
	out.Fee = cloneInt(e.Fee)
	if e.RawText != nil {
		raw := *e.RawText
		out.RawText = &raw
	}
	if e.SourceURLs != nil {
		out.SourceURLs = append([]string(nil), e.SourceURLs...)
	}
	return out
}

// PrimaryURL returns the first source URL or "".
func (e Entity) PrimaryURL() string {
	if len(e.SourceURLs) == 0 {
		return ""
	}
	return e.SourceURLs[0]
}

// Verdict is the outcome of semantic validation.
type Verdict string

const (
	Accept     Verdict = "ACCEPT"
	Reject     Verdict = "REJECT"
	Quarantine Verdict = "QUARANTINE"
)

// ReasonCode is the enumerated discriminator recorded on non-accepted input.
type ReasonCode string

const (
	ReasonMissingField   ReasonCode = "missing-required-field"
	ReasonNoise          ReasonCode = "administrative-noise"
	ReasonImplausible    ReasonCode = "implausible-name"
	ReasonBelowThreshold ReasonCode = "match-below-threshold"
	ReasonConflict       ReasonCode = "conflicting-evidence"
)

// Stage names the validator step that produced a decision.
type Stage string

const (
	StageStructural   Stage = "structural"
	StageNoise        Stage = "noise"
	StagePlausibility Stage = "plausibility"
	StageStatistics   Stage = "statistics"
)

// QuarantineRecord is an append-only audit entry for rejected or malformed
// input.
type QuarantineRecord struct {
	Text      string     `json:"text"`
	Verdict   Verdict    `json:"verdict"`
	Reason    ReasonCode `json:"reason"`
	Stage     Stage      `json:"stage"`
	Detail    string     `json:"detail,omitempty"`
	SourceURL string     `json:"source_url"`
	Kind      SourceKind `json:"kind"`
	Position  int        `json:"position"`
	RunID     string     `json:"run_id"`
}

// DocType is a coarse hint about what an admission PDF contains.
type DocType string

const (
	DocUnknown  DocType = "unknown"
	DocSpots    DocType = "spots"
	DocResults  DocType = "results"
	DocGuide    DocType = "guide"
	DocExam     DocType = "exam"
	DocCalendar DocType = "calendar"
)

// PDFCandidate is a RawCandidate from (or pointing at) an admission PDF.
// Row holds the validated facts of a pdf-row candidate; link stubs found
// next to HTML entries have no Row.
type PDFCandidate struct {
	RawCandidate
	LinkText   string  `json:"link_text"`
	YearSignal *int    `json:"year_signal,omitempty"`
	DocType    DocType `json:"doc_type"`
	Score      float64 `json:"score"`
	Ranked     bool    `json:"ranked"`
	Row        *Entity `json:"row,omitempty"`
}

// DocumentURL is the URL of the PDF the candidate refers to.
func (c PDFCandidate) DocumentURL() string {
	if c.Kind != KindPDFRow && c.PDFLink != nil {
		return *c.PDFLink
	}
	return c.SourceURL
}

// Field names a numeric entity field subject to arbitration.
type Field string

const (
	FieldBudget Field = "budget"
	FieldFee    Field = "fee"
)

// AlternateValue preserves a value that lost arbitration.
type AlternateValue struct {
	Field      Field   `json:"field"`
	Value      int     `json:"value"`
	Source     ID      `json:"source"`
	SourceURL  string  `json:"source_url"`
	Confidence float64 `json:"confidence"`
}

// MatchInfo describes the primary PDF row chosen for an entity.
type MatchInfo struct {
	Row         ID      `json:"row"`
	Label       string  `json:"label"`
	Similarity  float64 `json:"similarity"`
	DocumentURL string  `json:"document_url"`
	RankScore   float64 `json:"rank_score"`
}

// FusionResult is the final output unit: one per input entity.
type FusionResult struct {
	Entity        Entity           `json:"entity"`
	Sources       []ID             `json:"sources"`
	Conflict      bool             `json:"conflict"`
	Alternates    []AlternateValue `json:"alternates,omitempty"`
	AlternateRows []ID             `json:"alternate_rows,omitempty"`
	Match         *MatchInfo       `json:"match,omitempty"`
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

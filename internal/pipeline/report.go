package pipeline

import (
	"time"

	"admissions/internal/evidence"
)

// Status values recorded on a run.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Stats summarizes one run.
type Stats struct {
	Candidates  int `json:"candidates"`
	Accepted    int `json:"accepted"`
	Rejected    int `json:"rejected"`
	Quarantined int `json:"quarantined"`
	Entities    int `json:"entities"`
	Rows        int `json:"rows"`
	Documents   int `json:"documents"`
	Matched     int `json:"matched"`
	Conflicts   int `json:"conflicts"`
}

// Partition is the ranked evidence of one faculty context.
type Partition struct {
	Faculty    string                  `json:"faculty"`
	TargetYear int                     `json:"target_year"`
	Ranked     []evidence.PDFCandidate `json:"ranked"`
}

// Report is the outcome of one run.
type Report struct {
	RunID       string                      `json:"run_id"`
	Institution string                      `json:"institution"`
	Status      string                      `json:"status"`
	ConfigHash  string                      `json:"config_hash"`
	StartedAt   time.Time                   `json:"started_at"`
	FinishedAt  time.Time                   `json:"finished_at"`
	Results     []evidence.FusionResult     `json:"results"`
	Quarantine  []evidence.QuarantineRecord `json:"quarantine"`
	Partitions  []Partition                 `json:"partitions"`
	Stats       Stats                       `json:"stats"`
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

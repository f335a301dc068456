package ledger

import (
	"time"

	"admissions/internal/pipeline"
)

// Run is the manifest of one recorded run.
type Run struct {
	ID          string
	Institution string
	Status      string
	ConfigHash  string
	StartedAt   time.Time
	FinishedAt  *time.Time
	Stats       pipeline.Stats
}

// Duration is the wall time of the run, or zero while unfinished.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

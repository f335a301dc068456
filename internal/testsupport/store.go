package testsupport

import (
	"context"
	"testing"

	"admissions/internal/config"
	"admissions/internal/evidence"
	"admissions/internal/ledger"
	"admissions/internal/pipeline"
)

// MustOpenLedger opens a ledger.Store for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(cfg)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustRun runs the pipeline over candidates and fails the test on error.
func MustRun(t testing.TB, cfg *config.Config, candidates []evidence.RawCandidate) *pipeline.Report {
	t.Helper()

	p, err := pipeline.New(cfg, nil)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	report, err := p.Run(context.Background(), "ucv", candidates)
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}
	return report
}

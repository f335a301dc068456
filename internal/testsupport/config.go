package testsupport

import (
	"path/filepath"
	"testing"

	"admissions/internal/config"
)

// DefaultTargetYear is the admission year test configs pin.
const DefaultTargetYear = 2026

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The target year is pinned so results do not depend on the clock.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LedgerDir = filepath.Join(base, "ledger")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Ranking.TargetYear = DefaultTargetYear

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithTargetYear overrides the ranking target year.
func WithTargetYear(year int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ranking.TargetYear = year
	}
}

// WithWorkers overrides the fusion worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fusion.Workers = n
	}
}

// WithDenylist replaces the validator denylist.
func WithDenylist(terms ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Validation.Denylist = terms
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LedgerDir)
}

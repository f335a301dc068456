package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(TargetYearEnv, "2026")
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Ranking.TargetYear != 2026 {
		t.Fatalf("target year = %d, want 2026 from env", cfg.Ranking.TargetYear)
	}
	if cfg.Fusion.SimilarityThreshold != 0.82 {
		t.Fatalf("similarity threshold = %v", cfg.Fusion.SimilarityThreshold)
	}
	if !filepath.IsAbs(cfg.Paths.LedgerDir) {
		t.Fatalf("ledger dir not expanded: %q", cfg.Paths.LedgerDir)
	}
}

func TestLoadDefaultsTargetYearToCurrentYear(t *testing.T) {
	t.Setenv(TargetYearEnv, "")
	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ranking.TargetYear != time.Now().Year() {
		t.Fatalf("target year = %d", cfg.Ranking.TargetYear)
	}
}

func TestLoadParsesSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
ledger_dir = "` + filepath.ToSlash(dir) + `/ledger"

[validation]
denylist = ["  Ghid ", "ghid", "Taxe  de  scolarizare"]

[ranking]
target_year = 2025
year_strict = false
high_value_keywords = ["Cifra"]

[fusion]
similarity_threshold = 0.9
workers = 2

[identity]
load_bearing_params = ["Page"]

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if got := strings.Join(cfg.Validation.Denylist, ","); got != "ghid,taxe de scolarizare" {
		t.Fatalf("denylist = %q", got)
	}
	if cfg.Ranking.TargetYear != 2025 || cfg.Ranking.YearStrict {
		t.Fatalf("ranking = %+v", cfg.Ranking)
	}
	if cfg.Ranking.HighValueKeywords[0] != "cifra" {
		t.Fatalf("keywords not normalized: %v", cfg.Ranking.HighValueKeywords)
	}
	if cfg.Fusion.SimilarityThreshold != 0.9 || cfg.Fusion.Workers != 2 {
		t.Fatalf("fusion = %+v", cfg.Fusion)
	}
	if cfg.Identity.LoadBearingParams[0] != "page" {
		t.Fatalf("identity params = %v", cfg.Identity.LoadBearingParams)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging format = %q", cfg.Logging.Format)
	}
	if cfg.LedgerPath() != filepath.Join(dir, "ledger", "ledger.db") {
		t.Fatalf("ledger path = %q", cfg.LedgerPath())
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[fusion]\nthreshold = 0.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadRejectsBadTargetYearEnv(t *testing.T) {
	t.Setenv(TargetYearEnv, "next")
	if _, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for non-numeric target year")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"min length", func(c *Config) { c.Validation.MinNameLength = 0 }, "validation.min_name_length"},
		{"max below min", func(c *Config) { c.Validation.MaxNameLength = 2 }, "validation.max_name_length"},
		{"digit ratio", func(c *Config) { c.Validation.MaxDigitRatio = 1.5 }, "validation.max_digit_ratio"},
		{"confidence", func(c *Config) { c.Validation.PDFStatsConfidence = 2 }, "validation.pdf_stats_confidence"},
		{"target year", func(c *Config) { c.Ranking.TargetYear = 1800 }, "ranking.target_year"},
		{"window", func(c *Config) { c.Ranking.YearFallbackWindow = -1 }, "ranking.year_fallback_window"},
		{"negative weight", func(c *Config) { c.Ranking.NegativeWeight = 20 }, "ranking.negative_weight"},
		{"threshold", func(c *Config) { c.Fusion.SimilarityThreshold = 0 }, "fusion.similarity_threshold"},
		{"workers", func(c *Config) { c.Fusion.Workers = 0 }, "fusion.workers"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Ranking.TargetYear = 2026
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestHash(t *testing.T) {
	a := Default()
	b := Default()
	ha, err := a.Hash()
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	hb, _ := b.Hash()
	if ha != hb || len(ha) != 64 {
		t.Fatalf("hash not stable: %q vs %q", ha, hb)
	}
	b.Fusion.SimilarityThreshold = 0.9
	if hc, _ := b.Hash(); hc == ha {
		t.Fatal("hash should change with thresholds")
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv(TargetYearEnv, "2026")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := Default()
	if len(cfg.Validation.Denylist) != len(defaults.Validation.Denylist) {
		t.Fatalf("sample denylist has %d terms, defaults have %d", len(cfg.Validation.Denylist), len(defaults.Validation.Denylist))
	}
	if cfg.Ranking.TargetYear != 2026 {
		t.Fatalf("sample target year = %d", cfg.Ranking.TargetYear)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("ExpandPath = %q", got)
	}
	if got, _ := ExpandPath(""); got != "" {
		t.Fatalf("empty path expanded to %q", got)
	}
}

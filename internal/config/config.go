package config

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LedgerDir string `toml:"ledger_dir"`
	LogDir    string `toml:"log_dir"`
}

// Validation configures the semantic validator.
type Validation struct {
	// Denylist holds administrative and navigational terms. Entries are
	// matched as whole-token sequences after diacritic folding.
	Denylist             []string `toml:"denylist"`
	MinNameLength        int      `toml:"min_name_length"`
	MaxNameLength        int      `toml:"max_name_length"`
	MaxDigitRatio        float64  `toml:"max_digit_ratio"`
	MinDistinctLetters   int      `toml:"min_distinct_letters"`
	RepetitionMinLetters int      `toml:"repetition_min_letters"`
	NameOnlyConfidence   float64  `toml:"name_only_confidence"`
	HTMLStatsConfidence  float64  `toml:"html_stats_confidence"`
	PDFStatsConfidence   float64  `toml:"pdf_stats_confidence"`
}

// Ranking configures the PDF truth ranker.
type Ranking struct {
	// TargetYear is the admission year being collected. Zero selects
	// ADMISSIONS_TARGET_YEAR or the current calendar year.
	TargetYear         int      `toml:"target_year"`
	YearFallbackWindow int      `toml:"year_fallback_window"`
	YearStrict         bool     `toml:"year_strict"`
	TargetYearWeight   float64  `toml:"target_year_weight"`
	PreviousYearWeight float64  `toml:"previous_year_weight"`
	HighValueWeight    float64  `toml:"high_value_weight"`
	LowValueWeight     float64  `toml:"low_value_weight"`
	NegativeWeight     float64  `toml:"negative_weight"`
	HighValueKeywords  []string `toml:"high_value_keywords"`
	LowValueKeywords   []string `toml:"low_value_keywords"`
	NegativeKeywords   []string `toml:"negative_keywords"`
}

// Fusion configures matching and run parallelism.
type Fusion struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	Workers             int     `toml:"workers"`
}

// Identity configures URL canonicalization.
type Identity struct {
	LoadBearingParams []string `toml:"load_bearing_params"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the engine.
//
// Configuration sections by subsystem:
//   - Paths: ledger database and log directories
//   - Validation: denylist and plausibility thresholds
//   - Ranking: target year, weights and keyword sets
//   - Fusion: similarity threshold and worker count
//   - Identity: query parameters kept by URL canonicalization
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Validation Validation `toml:"validation"`
	Ranking    Ranking    `toml:"ranking"`
	Fusion     Fusion     `toml:"fusion"`
	Identity   Identity   `toml:"identity"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the ledger and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LedgerDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LedgerPath is the SQLite ledger database inside the ledger directory.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.LedgerDir, ledgerFileName)
}

// Hash returns the hex SHA-256 of the config's TOML encoding. Runs record it
// so results can be traced to the thresholds that produced them.
func (c *Config) Hash() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

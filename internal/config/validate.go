package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateValidation(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if err := c.validateFusion(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LedgerDir == "" {
		return errors.New("paths.ledger_dir must be set")
	}
	return nil
}

func (c *Config) validateValidation() error {
	v := c.Validation
	if v.MinNameLength < 1 {
		return errors.New("validation.min_name_length must be positive")
	}
	if v.MaxNameLength < v.MinNameLength {
		return errors.New("validation.max_name_length must be at least validation.min_name_length")
	}
	if v.MaxDigitRatio < 0 || v.MaxDigitRatio > 1 {
		return errors.New("validation.max_digit_ratio must be between 0 and 1")
	}
	if v.MinDistinctLetters < 1 {
		return errors.New("validation.min_distinct_letters must be positive")
	}
	if v.RepetitionMinLetters < 1 {
		return errors.New("validation.repetition_min_letters must be positive")
	}
	for name, value := range map[string]float64{
		"name_only_confidence":  v.NameOnlyConfidence,
		"html_stats_confidence": v.HTMLStatsConfidence,
		"pdf_stats_confidence":  v.PDFStatsConfidence,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("validation.%s must be between 0 and 1", name)
		}
	}
	return nil
}

func (c *Config) validateRanking() error {
	r := c.Ranking
	if r.TargetYear < 1900 || r.TargetYear > 2099 {
		return fmt.Errorf("ranking.target_year must be between 1900 and 2099 (got %d)", r.TargetYear)
	}
	if r.YearFallbackWindow < 0 {
		return errors.New("ranking.year_fallback_window must be >= 0")
	}
	if r.NegativeWeight > 0 {
		return errors.New("ranking.negative_weight must be <= 0")
	}
	return nil
}

func (c *Config) validateFusion() error {
	if c.Fusion.SimilarityThreshold <= 0 || c.Fusion.SimilarityThreshold > 1 {
		return errors.New("fusion.similarity_threshold must be in (0, 1]")
	}
	if c.Fusion.Workers < 1 {
		return errors.New("fusion.workers must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
	return nil
}

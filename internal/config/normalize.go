package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeValidation()
	if err := c.normalizeRanking(); err != nil {
		return err
	}
	c.normalizeIdentity()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LedgerDir, err = expandPath(c.Paths.LedgerDir); err != nil {
		return fmt.Errorf("paths.ledger_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeValidation() {
	c.Validation.Denylist = normalizeTerms(c.Validation.Denylist)
}

func (c *Config) normalizeRanking() error {
	if c.Ranking.TargetYear == 0 {
		if value, ok := os.LookupEnv(TargetYearEnv); ok && strings.TrimSpace(value) != "" {
			year, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%s: %w", TargetYearEnv, err)
			}
			c.Ranking.TargetYear = year
		} else {
			c.Ranking.TargetYear = time.Now().Year()
		}
	}
	c.Ranking.HighValueKeywords = normalizeTerms(c.Ranking.HighValueKeywords)
	c.Ranking.LowValueKeywords = normalizeTerms(c.Ranking.LowValueKeywords)
	c.Ranking.NegativeKeywords = normalizeTerms(c.Ranking.NegativeKeywords)
	return nil
}

func (c *Config) normalizeIdentity() {
	if c.Identity.LoadBearingParams == nil {
		c.Identity.LoadBearingParams = DefaultLoadBearingParams()
		return
	}
	c.Identity.LoadBearingParams = normalizeTerms(c.Identity.LoadBearingParams)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeTerms lowercases, trims, and deduplicates while keeping order.
func normalizeTerms(terms []string) []string {
	if terms == nil {
		return nil
	}
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.Join(strings.Fields(term), " "))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

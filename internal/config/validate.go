package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if c.Purge.MaxIterations < 0 {
		return errors.New("purge.max_iterations must be zero or positive")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if err := ValidateThreshold(c.Search.Threshold); err != nil {
		return fmt.Errorf("search.threshold: %w", err)
	}
	if c.Search.TopN < 0 {
		return errors.New("search.top_n must be zero or positive")
	}
	return nil
}

func (c *Config) validateCorpus() error {
	if _, err := filepath.Match(c.Corpus.Pattern, ""); err != nil {
		return fmt.Errorf("corpus.pattern %q: %w", c.Corpus.Pattern, err)
	}
	switch c.Corpus.InvalidUTF8 {
	case InvalidUTF8Drop, InvalidUTF8Replace:
	default:
		return fmt.Errorf("corpus.invalid_utf8 must be %q or %q, got %q", InvalidUTF8Drop, InvalidUTF8Replace, c.Corpus.InvalidUTF8)
	}
	return nil
}

// ValidateThreshold reports whether value is a usable similarity threshold.
func ValidateThreshold(value float64) error {
	if value != value || value < 0 || value > 1 {
		return fmt.Errorf("must be between 0 and 1, got %v", value)
	}
	return nil
}

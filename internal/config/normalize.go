package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSearch(); err != nil {
		return err
	}
	c.normalizeCorpus()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSearch() error {
	if value, ok := os.LookupEnv("TEXTPURGE_THRESHOLD"); ok && strings.TrimSpace(value) != "" {
		threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("TEXTPURGE_THRESHOLD: %w", err)
		}
		c.Search.Threshold = threshold
	}
	if c.Search.Workers <= 0 {
		c.Search.Workers = defaultWorkers
	}
	return nil
}

func (c *Config) normalizeCorpus() {
	c.Corpus.Pattern = strings.TrimSpace(c.Corpus.Pattern)
	if c.Corpus.Pattern == "" {
		c.Corpus.Pattern = defaultPattern
	}
	c.Corpus.InvalidUTF8 = strings.ToLower(strings.TrimSpace(c.Corpus.InvalidUTF8))
	if c.Corpus.InvalidUTF8 == "" {
		c.Corpus.InvalidUTF8 = defaultInvalidUTF8
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.StateDir, defaultJournalFile)
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("TEXTPURGE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

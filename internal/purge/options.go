package purge

import (
	"fmt"

	"textpurge/internal/config"
)

// Options is the immutable configuration of a search or purge run.
type Options struct {
	// Threshold is the minimum score in [0, 1] for a sentence to match.
	Threshold float64
	// Workers bounds how many files one search scans concurrently.
	Workers int
	// AutoJunk enables the popular-rune heuristic of the scorer.
	AutoJunk bool
	// MaxIterations caps search/remove cycles; 0 derives the cap from the
	// initial corpus size.
	MaxIterations int
}

// OptionsFromConfig extracts run options from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Threshold:     cfg.Search.Threshold,
		Workers:       cfg.Search.Workers,
		AutoJunk:      cfg.Search.AutoJunk,
		MaxIterations: cfg.Purge.MaxIterations,
	}
}

// Validate reports whether the options describe a usable run.
func (o Options) Validate() error {
	if err := config.ValidateThreshold(o.Threshold); err != nil {
		return fmt.Errorf("threshold: %w", err)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("max iterations must be zero or positive, got %d", o.MaxIterations)
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

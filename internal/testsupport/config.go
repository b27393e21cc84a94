package testsupport

import (
	"path/filepath"
	"testing"

	"textpurge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp state directory per
// test. Journal and lock stay at their defaults unless options change them.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Journal.Path = filepath.Join(base, "state", "journal.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThreshold sets the similarity threshold on the test config.
func WithThreshold(value float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.Threshold = value
	}
}

// WithJournal enables the removal journal on the test config.
func WithJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = true
	}
}

// WithWorkers sets the number of concurrent file scanners.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.Workers = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

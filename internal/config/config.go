package config

import (
	_ "embed"
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

// Search configures similarity search.
type Search struct {
	// Threshold is the minimum similarity score in [0, 1] a sentence needs to
	// count as a match.
	Threshold float64 `toml:"threshold"`
	// TopN caps the rows returned by the search command. 0 means unlimited.
	TopN int `toml:"top_n"`
	// Workers is the number of files scanned concurrently during one search.
	Workers int `toml:"workers"`
	// AutoJunk enables the popular-rune heuristic for long sentences.
	AutoJunk bool `toml:"autojunk"`
}

// Corpus configures which files are scanned and how they are decoded.
type Corpus struct {
	Pattern     string `toml:"pattern"`
	InvalidUTF8 string `toml:"invalid_utf8"`
}

// Purge configures the similarity removal loop.
type Purge struct {
	// MaxIterations caps search/remove cycles. 0 derives the cap from the
	// initial corpus size.
	MaxIterations int `toml:"max_iterations"`
}

// Paths contains state directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Lock configures the per-corpus run lock.
type Lock struct {
	Enabled bool `toml:"enabled"`
}

// Journal configures the removal journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for textpurge.
type Config struct {
	Search  Search  `toml:"search"`
	Corpus  Corpus  `toml:"corpus"`
	Purge   Purge   `toml:"purge"`
	Paths   Paths   `toml:"paths"`
	Lock    Lock    `toml:"lock"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/textpurge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error; defaults apply.
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
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
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

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("textpurge.toml")
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

// EnsureDirectories creates the state directory when a feature needs it.
func (c *Config) EnsureDirectories() error {
	if !c.Lock.Enabled && !c.Journal.Enabled {
		return nil
	}
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	if c.Journal.Enabled {
		if err := os.MkdirAll(filepath.Dir(c.Journal.Path), 0o755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
	}
	return nil
}

// LockDir returns the directory holding per-corpus run locks.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// Encode renders the configuration as TOML.
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
// An existing file is left untouched and reported as an error.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config already exists at %s", path)
		}
		return fmt.Errorf("write sample config: %w", err)
	}
	if _, err := file.WriteString(sampleConfig); err != nil {
		_ = file.Close()
		return fmt.Errorf("write sample config: %w", err)
	}
	return file.Close()
}

package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"textpurge/internal/logging"
)

// TextFile identifies one file of the corpus. It carries no content.
type TextFile struct {
	Path string
	Name string
}

// Options configures corpus discovery and decoding.
type Options struct {
	// Pattern is the glob file names must match. Empty means "*.txt".
	Pattern string
	// InvalidUTF8 is "drop" (default) or "replace".
	InvalidUTF8 string
	// Store performs reads and writes. Nil means DiskStore.
	Store  Store
	Logger *slog.Logger
}

// Corpus is the mutable set of text files under one directory.
type Corpus struct {
	dir    string
	files  []TextFile
	store  Store
	decode decodeFunc
	logger *slog.Logger
}

// Open enumerates the files in dir that match the configured pattern. Only
// regular files (after following symlinks) directly inside dir are included.
func Open(dir string, opts Options) (*Corpus, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*.txt"
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("corpus pattern %q: %w", pattern, err)
	}
	decode, err := decoderFor(opts.InvalidUTF8)
	if err != nil {
		return nil, err
	}
	store := opts.Store
	if store == nil {
		store = DiskStore{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileAccessError{Op: "list", Path: dir, Err: err}
	}

	var files []TextFile
	for _, entry := range entries {
		name := entry.Name()
		if ok, _ := filepath.Match(pattern, name); !ok {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			return nil, &FileAccessError{Op: "stat", Path: path, Err: err}
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, TextFile{Path: path, Name: name})
	}

	logger := logging.NewComponentLogger(opts.Logger, "corpus")
	logger.Debug("corpus discovered",
		logging.String("dir", dir),
		logging.String("pattern", pattern),
		logging.Int("files", len(files)),
	)

	return &Corpus{
		dir:    dir,
		files:  files,
		store:  store,
		decode: decode,
		logger: logger,
	}, nil
}

// Dir returns the directory the corpus was discovered from.
func (c *Corpus) Dir() string { return c.dir }

// Files returns the corpus files in enumeration order.
func (c *Corpus) Files() []TextFile {
	return slices.Clone(c.files)
}

// Read returns the current decoded content of f.
func (c *Corpus) Read(f TextFile) (string, error) {
	data, err := c.store.ReadFile(f.Path)
	if err != nil {
		return "", &FileAccessError{Op: "read", Path: f.Path, Err: err}
	}
	return c.decode(data), nil
}

// Write replaces the whole content of f.
func (c *Corpus) Write(f TextFile, content string) error {
	if err := c.store.WriteFile(f.Path, []byte(content)); err != nil {
		return &FileAccessError{Op: "write", Path: f.Path, Err: err}
	}
	return nil
}

// Rewrite reads f, applies edit, and writes the result back only when it
// differs from the current content. It reports whether f changed.
func (c *Corpus) Rewrite(f TextFile, edit func(string) string) (bool, error) {
	text, err := c.Read(f)
	if err != nil {
		return false, err
	}
	updated := edit(text)
	if updated == text {
		return false, nil
	}
	if err := c.Write(f, updated); err != nil {
		return false, err
	}
	c.logger.Debug("file rewritten",
		logging.String(logging.FieldFile, f.Path),
		logging.Int("runes_before", utf8.RuneCountInString(text)),
		logging.Int("runes_after", utf8.RuneCountInString(updated)),
	)
	return true, nil
}

// Size returns the total number of runes across all files.
func (c *Corpus) Size() (int, error) {
	total := 0
	for _, f := range c.files {
		text, err := c.Read(f)
		if err != nil {
			return 0, err
		}
		total += utf8.RuneCountInString(text)
	}
	return total, nil
}

// Preflight verifies every file can be read and, when write is set, written.
// Files are rewritten in place, so the directory itself need not be writable.
// It lets a run fail before any file has been modified.
func (c *Corpus) Preflight(write bool) error {
	for _, f := range c.files {
		if err := checkAccess(f.Path, write); err != nil {
			return &FileAccessError{Op: "access", Path: f.Path, Err: err}
		}
	}
	return nil
}

// Changes returns the pending edits when the corpus is backed by an Overlay,
// with both sides decoded. It returns nil for other stores.
func (c *Corpus) Changes() ([]Change, error) {
	overlay, ok := c.store.(*Overlay)
	if !ok {
		return nil, nil
	}
	changes, err := overlay.Changes()
	if err != nil {
		return nil, err
	}
	for i := range changes {
		changes[i].Before = c.decode([]byte(changes[i].Before))
	}
	return changes, nil
}

package corpus

import (
	"os"
	"sort"
	"sync"

	"textpurge/internal/fileutil"
)

// Store reads and writes whole files.
type Store interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// DiskStore reads and writes the real filesystem. Writes replace the whole
// file and refuse files the caller may not write.
type DiskStore struct{}

func (DiskStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (DiskStore) WriteFile(path string, data []byte) error {
	if err := checkAccess(path, true); err != nil {
		return err
	}
	return fileutil.OverwriteFile(path, data)
}

// Change is the before and after content of a file written through an Overlay.
type Change struct {
	Path   string
	Before string
	After  string
}

// Overlay records writes in memory on top of a base store, leaving the base
// untouched. It is safe for concurrent reads.
type Overlay struct {
	base Store

	mu      sync.RWMutex
	pending map[string][]byte
}

// NewOverlay wraps base. A nil base means the real filesystem.
func NewOverlay(base Store) *Overlay {
	if base == nil {
		base = DiskStore{}
	}
	return &Overlay{base: base, pending: make(map[string][]byte)}
}

func (o *Overlay) ReadFile(path string) ([]byte, error) {
	o.mu.RLock()
	data, ok := o.pending[path]
	o.mu.RUnlock()
	if ok {
		return append([]byte(nil), data...), nil
	}
	return o.base.ReadFile(path)
}

func (o *Overlay) WriteFile(path string, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[path] = append([]byte(nil), data...)
	return nil
}

// Changes returns every overlaid file whose content differs from the base,
// sorted by path. Before holds the raw base content.
func (o *Overlay) Changes() ([]Change, error) {
	o.mu.RLock()
	paths := make([]string, 0, len(o.pending))
	for path := range o.pending {
		paths = append(paths, path)
	}
	o.mu.RUnlock()
	sort.Strings(paths)

	changes := make([]Change, 0, len(paths))
	for _, path := range paths {
		before, err := o.base.ReadFile(path)
		if err != nil {
			return nil, &FileAccessError{Op: "read", Path: path, Err: err}
		}
		o.mu.RLock()
		after := o.pending[path]
		o.mu.RUnlock()
		if string(before) == string(after) {
			continue
		}
		changes = append(changes, Change{Path: path, Before: string(before), After: string(after)})
	}
	return changes, nil
}

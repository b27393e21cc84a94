package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteCorpus creates dir (if needed) and writes each name/content pair into
// it. It returns dir for chaining.
func WriteCorpus(t testing.TB, dir string, files map[string]string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// Snapshot returns the content of every regular file directly inside dir,
// keyed by name.
func Snapshot(t testing.TB, dir string) map[string]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		out[entry.Name()] = ReadFile(t, filepath.Join(dir, entry.Name()))
	}
	return out
}

package purge_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"textpurge/internal/corpus"
	"textpurge/internal/logging"
	"textpurge/internal/purge"
	"textpurge/internal/testsupport"
)

func openCorpus(t *testing.T, files map[string]string) (*corpus.Corpus, string) {
	t.Helper()

	dir := testsupport.WriteCorpus(t, t.TempDir(), files)
	c, err := corpus.Open(dir, corpus.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return c, dir
}

func defaultOptions() purge.Options {
	return purge.Options{Threshold: 0.6, Workers: 1}
}

// scriptedStore returns the queued contents on successive reads and discards
// writes.
type scriptedStore struct {
	mu    sync.Mutex
	reads []string
	calls int
}

func (s *scriptedStore) ReadFile(string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := min(s.calls, len(s.reads)-1)
	s.calls++
	return []byte(s.reads[i]), nil
}

func (s *scriptedStore) WriteFile(string, []byte) error { return nil }

type discardStore struct{ corpus.DiskStore }

func (discardStore) WriteFile(string, []byte) error { return nil }

type failingStore struct{ corpus.DiskStore }

func (failingStore) WriteFile(string, []byte) error { return os.ErrPermission }

type memoryRecorder struct {
	removals []purge.Removal
}

func (r *memoryRecorder) RecordRemoval(_ context.Context, removal purge.Removal) error {
	r.removals = append(r.removals, removal)
	return nil
}

func TestDriverRemovesExactMatchAndConverges(t *testing.T) {
	c, dir := openCorpus(t, map[string]string{"a.txt": "Hello world. Hello world. Goodbye."})

	report, err := purge.NewDriver(c, defaultOptions(), nil, logging.NewNop()).Run(t.Context(), "Hello world.")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != purge.StateConverged {
		t.Fatalf("expected CONVERGED, got %s", report.State)
	}
	if report.Iterations != 1 || len(report.Removals) != 1 {
		t.Fatalf("expected one removal, got %+v", report)
	}
	if got := report.Removals[0].Match.Score; got != 1 {
		t.Fatalf("expected score 1, got %v", got)
	}
	// Both separators survive: exact deletion does not renormalize whitespace.
	if got := testsupport.ReadFile(t, filepath.Join(dir, "a.txt")); got != "  Goodbye." {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestDriverRemovesEveryDistinctMatch(t *testing.T) {
	c, dir := openCorpus(t, map[string]string{
		"a.txt": "The cat sat. The cat sat! A dog ran. The cat sits.",
	})
	recorder := &memoryRecorder{}

	report, err := purge.NewDriver(c, defaultOptions(), recorder, logging.NewNop()).Run(t.Context(), "The cat sat.")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != purge.StateConverged {
		t.Fatalf("expected CONVERGED, got %s", report.State)
	}
	if report.Iterations != 3 {
		t.Fatalf("expected 3 iterations, got %d", report.Iterations)
	}
	wantOrder := []string{"The cat sat.", "The cat sat!", "The cat sits."}
	for i, removal := range report.Removals {
		if removal.Match.Sentence != wantOrder[i] {
			t.Fatalf("removal %d: expected %q, got %q", i, wantOrder[i], removal.Match.Sentence)
		}
		if removal.Iteration != i+1 {
			t.Fatalf("removal %d: expected iteration %d, got %d", i, i+1, removal.Iteration)
		}
	}
	if len(recorder.removals) != 3 {
		t.Fatalf("expected recorder to see 3 removals, got %d", len(recorder.removals))
	}
	if got := testsupport.ReadFile(t, filepath.Join(dir, "a.txt")); got != "  A dog ran. " {
		t.Fatalf("unexpected content %q", got)
	}

	matches, err := purge.NewSearcher(c, defaultOptions(), logging.NewNop()).Search(t.Context(), "The cat sat.", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no remaining matches, got %+v", matches)
	}
}

func TestDriverIsIdempotent(t *testing.T) {
	c, dir := openCorpus(t, map[string]string{
		"a.txt": "Hello world. Stay here.",
		"b.txt": "Hello world!",
	})
	driver := purge.NewDriver(c, defaultOptions(), nil, logging.NewNop())
	if _, err := driver.Run(t.Context(), "Hello world."); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := testsupport.Snapshot(t, dir)

	report, err := driver.Run(t.Context(), "Hello world.")
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.State != purge.StateConverged || report.Iterations != 0 {
		t.Fatalf("expected immediate convergence, got %+v", report)
	}
	after := testsupport.Snapshot(t, dir)
	for name, content := range before {
		if after[name] != content {
			t.Fatalf("%s changed on second run: %q -> %q", name, content, after[name])
		}
	}
}

func TestDriverReportsChangedFilesOnce(t *testing.T) {
	c, _ := openCorpus(t, map[string]string{
		"a.txt": "Hello world. Hello world!",
		"b.txt": "Nothing similar here at all.",
	})
	report, err := purge.NewDriver(c, defaultOptions(), nil, logging.NewNop()).Run(t.Context(), "Hello world.")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Removals) != 2 {
		t.Fatalf("expected 2 removals, got %d", len(report.Removals))
	}
	changed := report.ChangedFiles()
	if len(changed) != 1 || changed[0].Name != "a.txt" {
		t.Fatalf("unexpected changed files %+v", changed)
	}
}

func TestDriverStallsWhenRemovalChangesNothing(t *testing.T) {
	store := &scriptedStore{reads: []string{"Hello world.", "Goodbye."}}
	dir := testsupport.WriteCorpus(t, t.TempDir(), map[string]string{"a.txt": ""})
	c, err := corpus.Open(dir, corpus.Options{Store: store})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	opts := defaultOptions()
	opts.MaxIterations = 5

	report, err := purge.NewDriver(c, opts, nil, logging.NewNop()).Run(t.Context(), "Hello world.")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != purge.StateStalled {
		t.Fatalf("expected STALLED, got %s", report.State)
	}
	if report.Iterations != 1 || len(report.Removals) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestDriverEnforcesIterationLimit(t *testing.T) {
	dir := testsupport.WriteCorpus(t, t.TempDir(), map[string]string{"a.txt": "Hello world."})
	c, err := corpus.Open(dir, corpus.Options{Store: discardStore{}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	opts := defaultOptions()
	opts.MaxIterations = 3

	report, err := purge.NewDriver(c, opts, nil, logging.NewNop()).Run(t.Context(), "Hello world.")
	if !errors.Is(err, purge.ErrIterationLimit) {
		t.Fatalf("expected ErrIterationLimit, got %v", err)
	}
	if report.Iterations != 3 {
		t.Fatalf("expected 3 iterations, got %d", report.Iterations)
	}
}

func TestDriverHonoursCancellation(t *testing.T) {
	c, dir := openCorpus(t, map[string]string{"a.txt": "Hello world."})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := purge.NewDriver(c, defaultOptions(), nil, logging.NewNop()).Run(ctx, "Hello world.")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dir, "a.txt")); got != "Hello world." {
		t.Fatalf("file modified after cancellation: %q", got)
	}
}

type cancellingStore struct {
	corpus.DiskStore
	cancel context.CancelFunc
}

func (s cancellingStore) WriteFile(path string, data []byte) error {
	s.cancel()
	return s.DiskStore.WriteFile(path, data)
}

type contextRecorder struct {
	errs []error
}

func (r *contextRecorder) RecordRemoval(ctx context.Context, _ purge.Removal) error {
	r.errs = append(r.errs, ctx.Err())
	return ctx.Err()
}

func TestDriverRecordsRemovalWhenCancelledMidRemoval(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	dir := testsupport.WriteCorpus(t, t.TempDir(), map[string]string{"a.txt": "Hello world. Goodbye."})
	c, err := corpus.Open(dir, corpus.Options{Store: cancellingStore{cancel: cancel}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	recorder := &contextRecorder{}

	report, err := purge.NewDriver(c, defaultOptions(), recorder, logging.NewNop()).Run(ctx, "Hello world.")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled after the removal, got %v", err)
	}
	if len(report.Removals) != 1 {
		t.Fatalf("expected one removal, got %+v", report.Removals)
	}
	if len(recorder.errs) != 1 || recorder.errs[0] != nil {
		t.Fatalf("recorder saw cancelled context: %v", recorder.errs)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dir, "a.txt")); got != " Goodbye." {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestDriverSurfacesWriteFailure(t *testing.T) {
	dir := testsupport.WriteCorpus(t, t.TempDir(), map[string]string{"a.txt": "Hello world."})
	c, err := corpus.Open(dir, corpus.Options{Store: failingStore{}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	_, err = purge.NewDriver(c, defaultOptions(), nil, logging.NewNop()).Run(t.Context(), "Hello world.")
	var accessErr *corpus.FileAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("expected FileAccessError, got %v", err)
	}
	if accessErr.Op != "write" || accessErr.Path != filepath.Join(dir, "a.txt") {
		t.Fatalf("unexpected error detail %+v", accessErr)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    purge.Options
		wantErr bool
	}{
		{name: "defaults", opts: defaultOptions()},
		{name: "zero threshold", opts: purge.Options{Threshold: 0}},
		{name: "one threshold", opts: purge.Options{Threshold: 1}},
		{name: "negative threshold", opts: purge.Options{Threshold: -0.1}, wantErr: true},
		{name: "threshold above one", opts: purge.Options{Threshold: 1.5}, wantErr: true},
		{name: "negative cap", opts: purge.Options{Threshold: 0.5, MaxIterations: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

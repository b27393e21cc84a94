package preview_test

import (
	"bytes"
	"strings"
	"testing"

	"textpurge/internal/corpus"
	"textpurge/internal/preview"
)

func TestFileDiffSingleLine(t *testing.T) {
	change := corpus.Change{
		Path:   "/corpus/a.txt",
		Before: "Hello world. Goodbye.",
		After:  " Goodbye.",
	}
	got := preview.FileDiff(change, preview.Options{Context: preview.DefaultContext})
	want := strings.Join([]string{
		"--- /corpus/a.txt",
		"+++ /corpus/a.txt (dry run)",
		"-Hello world. Goodbye.",
		"+ Goodbye.",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected diff:\n%s\nwant:\n%s", got, want)
	}
}

func TestFileDiffCollapsesUnchangedLines(t *testing.T) {
	before := "l1\nl2\nl3\nl4\nl5\ndrop me.\nl7\n"
	after := "l1\nl2\nl3\nl4\nl5\n\nl7\n"
	got := preview.FileDiff(corpus.Change{Path: "a.txt", Before: before, After: after}, preview.Options{Context: 1})

	if !strings.Contains(got, "@@ 4 unchanged lines @@\n") {
		t.Fatalf("expected collapsed marker, got:\n%s", got)
	}
	if !strings.Contains(got, " l5\n-drop me.\n+\n l7\n") {
		t.Fatalf("expected change with one line of context, got:\n%s", got)
	}
	if strings.Contains(got, " l1\n") {
		t.Fatalf("expected l1 to be collapsed, got:\n%s", got)
	}
}

func TestFileDiffFullContext(t *testing.T) {
	before := "a\nb\nc\n"
	after := "a\nB\nc\n"
	got := preview.FileDiff(corpus.Change{Path: "x", Before: before, After: after}, preview.Options{Context: -1})
	if strings.Contains(got, "@@") {
		t.Fatalf("expected no collapsed lines, got:\n%s", got)
	}
	if !strings.Contains(got, " a\n-b\n+B\n c\n") {
		t.Fatalf("unexpected body:\n%s", got)
	}
}

func TestFileDiffColor(t *testing.T) {
	change := corpus.Change{Path: "a.txt", Before: "x\n", After: "y\n"}
	got := preview.FileDiff(change, preview.Options{Color: true})
	if !strings.Contains(got, "\x1b[31m-x\x1b[0m") || !strings.Contains(got, "\x1b[32m+y\x1b[0m") {
		t.Fatalf("expected colored lines, got %q", got)
	}
}

func TestWriteRendersEveryChange(t *testing.T) {
	changes := []corpus.Change{
		{Path: "a.txt", Before: "one\n", After: "\n"},
		{Path: "b.txt", Before: "two\n", After: "\n"},
	}
	var buf bytes.Buffer
	if err := preview.Write(&buf, changes, preview.Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "--- a.txt") > strings.Index(out, "--- b.txt") || !strings.Contains(out, "--- b.txt") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

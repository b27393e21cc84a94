// Package preview renders pending corpus changes as line diffs for dry runs.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"textpurge/internal/corpus"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 2

// Options controls rendering.
type Options struct {
	// Color wraps removed and added lines in ANSI colors.
	Color bool
	// Context is the number of unchanged lines shown around changes. Negative
	// values show every line.
	Context int
}

// Write renders every change to w, one file after another.
func Write(w io.Writer, changes []corpus.Change, opts Options) error {
	for _, change := range changes {
		if _, err := io.WriteString(w, FileDiff(change, opts)); err != nil {
			return err
		}
	}
	return nil
}

// FileDiff renders a single change. Lines are prefixed with "-", "+" or a
// space; runs of unchanged lines beyond the context window collapse into one
// "@@" marker.
func FileDiff(change corpus.Change, opts Options) string {
	var b strings.Builder
	b.WriteString(paint(opts.Color, ansiCyan, "--- "+change.Path))
	b.WriteByte('\n')
	b.WriteString(paint(opts.Color, ansiCyan, "+++ "+change.Path+" (dry run)"))
	b.WriteByte('\n')

	lines := diffLines(change.Before, change.After)
	keep := contextMask(lines, opts.Context)
	skipped := 0
	flush := func() {
		if skipped > 0 {
			b.WriteString(paint(opts.Color, ansiCyan, fmt.Sprintf("@@ %d unchanged lines @@", skipped)))
			b.WriteByte('\n')
			skipped = 0
		}
	}
	for i, line := range lines {
		if !keep[i] {
			skipped++
			continue
		}
		flush()
		switch line.op {
		case diffmatchpatch.DiffDelete:
			b.WriteString(paint(opts.Color, ansiRed, "-"+line.text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(paint(opts.Color, ansiGreen, "+"+line.text))
		default:
			b.WriteString(" " + line.text)
		}
		b.WriteByte('\n')
	}
	flush()
	return b.String()
}

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

func diffLines(before, after string) []diffLine {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []diffLine
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			lines = append(lines, diffLine{op: d.Type, text: text})
		}
	}
	return lines
}

// splitLines splits on "\n" without producing a trailing empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func contextMask(lines []diffLine, context int) []bool {
	keep := make([]bool, len(lines))
	if context < 0 {
		for i := range keep {
			keep[i] = true
		}
		return keep
	}
	for i, line := range lines {
		if line.op == diffmatchpatch.DiffEqual {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	return keep
}

func paint(enabled bool, color, text string) string {
	if !enabled {
		return text
	}
	return color + text + ansiReset
}

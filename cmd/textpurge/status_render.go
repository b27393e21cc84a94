package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"textpurge/internal/purge"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 14
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

// stateKind maps a final run state to how it is presented. A stall is a
// normal exit but worth a second look.
func stateKind(state string) statusKind {
	switch state {
	case string(purge.StateConverged), stateDone:
		return statusOK
	case string(purge.StateStalled):
		return statusWarn
	default:
		return statusInfo
	}
}

func renderPurgeSummary(w io.Writer, result purgeResult, dryRun, colorize bool) {
	var lines []string

	outcome := result.state
	if result.state != stateDone {
		outcome = fmt.Sprintf("%s after %d %s", result.state, result.iterations, plural(result.iterations, "iteration", "iterations"))
	}
	lines = append(lines, renderStatusLine("Result", stateKind(result.state), outcome, colorize))

	verb := "Changed"
	if dryRun {
		verb = "Would change"
	}
	changed := fmt.Sprintf("%d %s", len(result.changed), plural(len(result.changed), "file", "files"))
	lines = append(lines, renderStatusLine(verb, statusInfo, changed, colorize))
	for _, f := range result.changed {
		lines = append(lines, statusIndent+statusIndent+f.Path)
	}
	if dryRun {
		lines = append(lines, renderStatusLine("Dry run", statusWarn, "no files were written", colorize))
	}

	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

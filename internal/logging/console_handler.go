package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one human-readable line per record:
//
//	2026-01-02T15:04:05Z INFO purge: best match iteration=1 score=0.9
//
// The component attribute becomes the line prefix. Attributes bound with
// WithAttrs are rendered once and reused.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	addSource bool

	component string
	group     string
	bound     []byte
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: new(sync.Mutex), w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	buf := make([]byte, 0, 160+len(h.bound))
	buf = ts.UTC().AppendFormat(buf, time.RFC3339)
	buf = append(buf, ' ')
	buf = append(buf, r.Level.String()...)
	buf = append(buf, ' ')
	if h.component != "" {
		buf = append(buf, h.component...)
		buf = append(buf, ": "...)
	}
	if msg := strings.TrimSpace(r.Message); msg != "" {
		buf = append(buf, msg...)
	} else {
		buf = append(buf, "(no message)"...)
	}
	if h.addSource {
		if src := r.Source(); src != nil {
			buf = append(buf, " ["...)
			buf = append(buf, filepath.Base(src.File)...)
			buf = append(buf, ':')
			buf = strconv.AppendInt(buf, int64(src.Line), 10)
			buf = append(buf, ']')
		}
	}
	buf = append(buf, h.bound...)
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.group, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.bound = slices.Clone(h.bound)
	for _, a := range attrs {
		if h.group == "" && a.Key == FieldComponent {
			clone.component = plainString(a.Value.Resolve())
			continue
		}
		clone.bound = appendAttr(clone.bound, h.group, a)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.group + name + "."
	return &clone
}

// appendAttr renders a as " key=value", flattening groups into dotted keys.
func appendAttr(buf []byte, group string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			buf = appendAttr(buf, group, member)
		}
		return buf
	}
	if a.Key == "" {
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, group...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

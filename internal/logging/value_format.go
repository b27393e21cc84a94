package logging

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"
)

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'f', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().UTC().AppendFormat(buf, time.RFC3339)
	default:
		return appendMaybeQuoted(buf, plainString(v))
	}
}

// plainString is the unquoted text of v; errors render as their message.
func plainString(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.String()
}

// appendMaybeQuoted quotes s when it is empty or would break key=value parsing.
func appendMaybeQuoted(buf []byte, s string) []byte {
	if s == "" || strings.ContainsFunc(s, needsQuote) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func needsQuote(r rune) bool {
	return r <= ' ' || r == '=' || r == '"' || !unicode.IsPrint(r)
}

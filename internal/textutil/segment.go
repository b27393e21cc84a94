package textutil

import (
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentences returns the trimmed, non-empty sentences of text in order.
// The sequence is lazy and may be ranged over any number of times.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			i += size
			if !isTerminator(r) {
				continue
			}
			end := i
			next := skipSpace(text, end)
			if next == end {
				continue
			}
			if sentence := strings.TrimFunc(text[start:end], isSpace); sentence != "" {
				if !yield(sentence) {
					return
				}
			}
			start = next
			i = next
		}
		if sentence := strings.TrimFunc(text[start:], isSpace); sentence != "" {
			yield(sentence)
		}
	}
}

// SplitSentences collects Sentences(text) into a slice.
func SplitSentences(text string) []string {
	return slices.Collect(Sentences(text))
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// skipSpace returns the offset of the first non-space rune at or after pos.
func skipSpace(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !isSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

// isSpace reports Unicode white space plus the ASCII information separators
// U+001C through U+001F, which plain-text corpora use as record delimiters.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

package purge

import (
	"log/slog"
	"regexp"
	"strings"

	"textpurge/internal/corpus"
	"textpurge/internal/logging"
)

// Remover deletes content from every file of a corpus.
type Remover struct {
	corpus *corpus.Corpus
	logger *slog.Logger
}

// NewRemover builds a remover over c.
func NewRemover(c *corpus.Corpus, logger *slog.Logger) *Remover {
	return &Remover{corpus: c, logger: logging.NewComponentLogger(logger, "remove")}
}

// RemoveSentence deletes every exact occurrence of sentence from every file
// and returns the files that changed. Surrounding whitespace is left as is.
// On error the files changed so far are returned with it.
func (r *Remover) RemoveSentence(sentence string) ([]corpus.TextFile, error) {
	return r.rewriteAll("removed sentence", func(text string) string {
		return strings.ReplaceAll(text, sentence, "")
	})
}

// CompilePattern compiles an RE2 pattern, wrapping failures in PatternError.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// RemovePattern deletes every non-overlapping match of pattern from every file
// in one pass and returns the files that changed. The pattern is compiled
// before any file is read.
func (r *Remover) RemovePattern(pattern string) ([]corpus.TextFile, error) {
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return r.RemoveRegexp(re)
}

// RemoveRegexp is RemovePattern for an already compiled expression.
func (r *Remover) RemoveRegexp(re *regexp.Regexp) ([]corpus.TextFile, error) {
	return r.rewriteAll("removed pattern matches", func(text string) string {
		return re.ReplaceAllLiteralString(text, "")
	})
}

func (r *Remover) rewriteAll(msg string, edit func(string) string) ([]corpus.TextFile, error) {
	var changed []corpus.TextFile
	for _, f := range r.corpus.Files() {
		ok, err := r.corpus.Rewrite(f, edit)
		if err != nil {
			return changed, err
		}
		if ok {
			r.logger.Info(msg, logging.String(logging.FieldFile, f.Path))
			changed = append(changed, f)
		}
	}
	return changed, nil
}

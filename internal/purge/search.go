package purge

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"textpurge/internal/corpus"
	"textpurge/internal/logging"
	"textpurge/internal/textutil"
)

// Match is a sentence that scored at or above the threshold.
type Match struct {
	File     corpus.TextFile `json:"-"`
	Path     string          `json:"file"`
	Sentence string          `json:"sentence"`
	Score    float64         `json:"score"`
	// Index is the position of the sentence within its file.
	Index int `json:"index"`
}

// Searcher ranks corpus sentences against a query. It never writes.
type Searcher struct {
	corpus  *corpus.Corpus
	opts    Options
	matcher textutil.Matcher
	logger  *slog.Logger
}

// NewSearcher builds a searcher over c.
func NewSearcher(c *corpus.Corpus, opts Options, logger *slog.Logger) *Searcher {
	return &Searcher{
		corpus:  c,
		opts:    opts,
		matcher: textutil.Matcher{AutoJunk: opts.AutoJunk},
		logger:  logging.NewComponentLogger(logger, "search"),
	}
}

// Search scores every sentence of every file against query and returns the
// matches at or above the threshold, best first. Equal scores keep corpus scan
// order: file enumeration order, then sentence order. topN <= 0 returns every
// match. Files are re-read on every call.
func (s *Searcher) Search(ctx context.Context, query string, topN int) ([]Match, error) {
	files := s.corpus.Files()
	perFile := make([][]Match, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.workers())
	for i, f := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches, err := s.scanFile(f, query)
			if err != nil {
				return err
			}
			perFile[i] = matches
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var ranked []Match
	for _, matches := range perFile {
		ranked = append(ranked, matches...)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	s.logger.Debug("search complete",
		logging.Int("files", len(files)),
		logging.Int("matches", len(ranked)),
		logging.Float64("threshold", s.opts.Threshold),
	)
	return ranked, nil
}

// BestMatch returns the single highest ranked match, if any.
func (s *Searcher) BestMatch(ctx context.Context, query string) (Match, bool, error) {
	matches, err := s.Search(ctx, query, 1)
	if err != nil || len(matches) == 0 {
		return Match{}, false, err
	}
	return matches[0], true, nil
}

func (s *Searcher) scanFile(f corpus.TextFile, query string) ([]Match, error) {
	text, err := s.corpus.Read(f)
	if err != nil {
		return nil, err
	}
	var matches []Match
	index := 0
	for sentence := range textutil.Sentences(text) {
		score := s.matcher.Ratio(query, sentence)
		if score >= s.opts.Threshold {
			matches = append(matches, Match{
				File:     f,
				Path:     f.Path,
				Sentence: sentence,
				Score:    score,
				Index:    index,
			})
		}
		index++
	}
	return matches, nil
}

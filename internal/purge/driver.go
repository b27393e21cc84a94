package purge

import (
	"context"
	"fmt"
	"log/slog"

	"textpurge/internal/corpus"
	"textpurge/internal/logging"
)

// State is a similarity loop state.
type State string

const (
	StateSearching State = "SEARCHING"
	StateRemoving  State = "REMOVING"
	StateConverged State = "CONVERGED"
	StateStalled   State = "STALLED"
)

// Terminal reports whether the loop stops in s.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateStalled
}

// Removal describes one successful REMOVING step.
type Removal struct {
	Iteration int
	Match     Match
	Changed   []corpus.TextFile
}

// Report summarizes a similarity run.
type Report struct {
	State State
	// Iterations counts SEARCHING steps that found a match.
	Iterations int
	Removals   []Removal
}

// ChangedFiles returns every file modified during the run, in the order each
// was first changed.
func (r Report) ChangedFiles() []corpus.TextFile {
	seen := make(map[string]struct{})
	var files []corpus.TextFile
	for _, removal := range r.Removals {
		for _, f := range removal.Changed {
			if _, ok := seen[f.Path]; ok {
				continue
			}
			seen[f.Path] = struct{}{}
			files = append(files, f)
		}
	}
	return files
}

// Recorder receives every successful removal, for example to journal it.
type Recorder interface {
	RecordRemoval(ctx context.Context, removal Removal) error
}

// Driver runs the search/remove loop until the corpus converges or stalls.
type Driver struct {
	corpus   *corpus.Corpus
	searcher *Searcher
	remover  *Remover
	opts     Options
	recorder Recorder
	logger   *slog.Logger
}

// NewDriver wires a searcher and remover over c. recorder may be nil.
func NewDriver(c *corpus.Corpus, opts Options, recorder Recorder, logger *slog.Logger) *Driver {
	return &Driver{
		corpus:   c,
		searcher: NewSearcher(c, opts, logger),
		remover:  NewRemover(c, logger),
		opts:     opts,
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "purge"),
	}
}

// Run removes every sentence matching query until none remain. Cancellation
// is honoured only between iterations, never during a removal. The returned
// report is valid even when err is non-nil.
func (d *Driver) Run(ctx context.Context, query string) (Report, error) {
	report := Report{State: StateSearching}

	limit, err := d.iterationLimit()
	if err != nil {
		return report, err
	}

	var current Match
	for !report.State.Terminal() {
		switch report.State {
		case StateSearching:
			if err := ctx.Err(); err != nil {
				return report, err
			}
			match, ok, err := d.searcher.BestMatch(ctx, query)
			if err != nil {
				return report, err
			}
			if !ok {
				d.logger.Info("no more matches above threshold",
					logging.Float64("threshold", d.opts.Threshold),
					logging.Int(logging.FieldIteration, report.Iterations),
				)
				report.State = StateConverged
				continue
			}
			if report.Iterations >= limit {
				return report, fmt.Errorf("%w: %d iterations", ErrIterationLimit, report.Iterations)
			}
			report.Iterations++
			current = match
			d.logger.Info("best match",
				logging.Int(logging.FieldIteration, report.Iterations),
				logging.Float64(logging.FieldScore, match.Score),
				logging.String(logging.FieldFile, match.Path),
				logging.String("sentence", match.Sentence),
			)
			report.State = StateRemoving

		case StateRemoving:
			changed, err := d.remover.RemoveSentence(current.Sentence)
			if len(changed) > 0 {
				report.Removals = append(report.Removals, Removal{
					Iteration: report.Iterations,
					Match:     current,
					Changed:   changed,
				})
			}
			if err != nil {
				return report, err
			}
			if len(changed) == 0 {
				d.logger.Info("no removal occurred, stopping",
					logging.String("sentence", current.Sentence),
					logging.Int(logging.FieldIteration, report.Iterations),
				)
				report.State = StateStalled
				continue
			}
			// Files are already written; the record must land even if the run
			// is being cancelled.
			if d.recorder != nil {
				if err := d.recorder.RecordRemoval(context.WithoutCancel(ctx), report.Removals[len(report.Removals)-1]); err != nil {
					return report, fmt.Errorf("record removal: %w", err)
				}
			}
			report.State = StateSearching
		}
	}
	return report, nil
}

func (d *Driver) iterationLimit() (int, error) {
	if d.opts.MaxIterations > 0 {
		return d.opts.MaxIterations, nil
	}
	size, err := d.corpus.Size()
	if err != nil {
		return 0, err
	}
	return size + 1, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"textpurge/internal/config"
	"textpurge/internal/corpus"
	"textpurge/internal/journal"
	"textpurge/internal/logging"
	"textpurge/internal/preview"
	"textpurge/internal/purge"
)

type purgeRequest struct {
	query            string
	dir              string
	regex            bool
	dryRun           bool
	maxIterations    int
	maxIterationsSet bool
}

// purgeResult is what one run did, independent of mode.
type purgeResult struct {
	state      string
	iterations int
	removals   int
	changed    []corpus.TextFile
}

func runPurge(cmd *cobra.Command, cc *commandContext, req purgeRequest) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	baseLogger, err := cc.ensureLogger()
	if err != nil {
		return err
	}

	opts := purge.OptionsFromConfig(cfg)
	if req.maxIterationsSet {
		opts.MaxIterations = req.maxIterations
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	// Compile before touching the corpus so a bad pattern changes nothing.
	var pattern *regexp.Regexp
	if req.regex {
		pattern, err = purge.CompilePattern(req.query)
		if err != nil {
			return err
		}
	}

	dir, err := filepath.Abs(req.dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}

	runID := uuid.NewString()
	logger := baseLogger.With(logging.String(logging.FieldRunID, runID))

	if cfg.Lock.Enabled {
		lock, err := corpus.AcquireLock(cfg.LockDir(), dir)
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	var store corpus.Store
	if req.dryRun {
		store = corpus.NewOverlay(corpus.DiskStore{})
	}
	c, err := corpus.Open(dir, corpus.Options{
		Pattern:     cfg.Corpus.Pattern,
		InvalidUTF8: cfg.Corpus.InvalidUTF8,
		Store:       store,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	if err := c.Preflight(!req.dryRun); err != nil {
		return err
	}

	rj, err := openJournal(cmd.Context(), cfg, journal.Run{
		ID:        runID,
		Mode:      modeOf(req),
		Query:     req.query,
		Directory: dir,
		Threshold: thresholdOf(req, opts),
		DryRun:    req.dryRun,
	})
	if err != nil {
		return err
	}
	defer rj.Close()

	logger.Info("purge started",
		logging.String("mode", string(modeOf(req))),
		logging.String("query", req.query),
		logging.String("dir", dir),
		logging.Int("files", len(c.Files())),
		logging.Float64("threshold", opts.Threshold),
		logging.Bool("dry_run", req.dryRun),
	)
	started := time.Now()

	var result purgeResult
	if req.regex {
		result, err = runPatternPurge(cmd.Context(), c, pattern, rj, logger)
	} else {
		result, err = runSimilarityPurge(cmd.Context(), c, opts, req.query, rj, logger)
	}

	if finishErr := rj.finish(result, err); finishErr != nil && err == nil {
		err = finishErr
	}
	if err != nil {
		logger.Error("purge failed", logging.Error(err), logging.String(logging.FieldState, result.state))
		return err
	}

	logger.Info("purge complete",
		logging.String(logging.FieldState, result.state),
		logging.Int("iterations", result.iterations),
		logging.Int("changed_files", len(result.changed)),
		logging.Duration("elapsed", time.Since(started)),
	)

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	if req.dryRun {
		changes, err := c.Changes()
		if err != nil {
			return err
		}
		if err := preview.Write(out, changes, preview.Options{Color: colorize, Context: preview.DefaultContext}); err != nil {
			return err
		}
	}
	renderPurgeSummary(out, result, req.dryRun, colorize)
	return nil
}

func runSimilarityPurge(ctx context.Context, c *corpus.Corpus, opts purge.Options, query string, rj *runJournal, logger *slog.Logger) (purgeResult, error) {
	report, err := purge.NewDriver(c, opts, rj.recorder(), logger).Run(ctx, query)
	return purgeResult{
		state:      string(report.State),
		iterations: report.Iterations,
		removals:   len(report.Removals),
		changed:    report.ChangedFiles(),
	}, err
}

func runPatternPurge(ctx context.Context, c *corpus.Corpus, pattern *regexp.Regexp, rj *runJournal, logger *slog.Logger) (purgeResult, error) {
	changed, err := purge.NewRemover(c, logger).RemoveRegexp(pattern)
	result := purgeResult{state: stateDone, changed: changed}
	if len(changed) > 0 {
		result.removals = 1
	}
	if err != nil {
		return result, err
	}
	if err := rj.recordPattern(context.WithoutCancel(ctx), pattern.String(), changed); err != nil {
		return result, err
	}
	return result, nil
}

// stateDone is the final state of a regex run, which has no search loop.
const stateDone = "DONE"

func modeOf(req purgeRequest) journal.Mode {
	if req.regex {
		return journal.ModeRegex
	}
	return journal.ModeSimilarity
}

func thresholdOf(req purgeRequest, opts purge.Options) *float64 {
	if req.regex {
		return nil
	}
	threshold := opts.Threshold
	return &threshold
}

// runJournal wraps an optional journal store. Its methods are no-ops when the
// journal is disabled.
type runJournal struct {
	store *journal.Store
	runID string
}

func openJournal(ctx context.Context, cfg *config.Config, run journal.Run) (*runJournal, error) {
	if !cfg.Journal.Enabled {
		return &runJournal{}, nil
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := store.BeginRun(ctx, run); err != nil {
		_ = store.Close()
		return nil, err
	}
	return &runJournal{store: store, runID: run.ID}, nil
}

func (j *runJournal) recorder() purge.Recorder {
	if j.store == nil {
		return nil
	}
	return j.store.Recorder(j.runID)
}

func (j *runJournal) recordPattern(ctx context.Context, pattern string, changed []corpus.TextFile) error {
	if j.store == nil {
		return nil
	}
	return j.store.RecordChanges(ctx, j.runID, 0, pattern, nil, changed)
}

func (j *runJournal) finish(result purgeResult, runErr error) error {
	if j.store == nil {
		return nil
	}
	state := result.state
	if runErr != nil {
		state = "FAILED"
	}
	// The run context may already be cancelled; the outcome is still recorded.
	return j.store.FinishRun(context.Background(), j.runID, state, result.iterations, runErr)
}

func (j *runJournal) Close() error {
	if j.store == nil {
		return nil
	}
	return j.store.Close()
}

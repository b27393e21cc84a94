package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"textpurge/internal/corpus"
	"textpurge/internal/purge"
)

// ErrRunNotFound reports an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = "r.id, r.mode, r.query, r.directory, r.threshold, r.dry_run, r.state, r.iterations, r.error_message, r.started_at, r.finished_at"

// BeginRun records the start of a run. StartedAt defaults to now.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	var threshold any
	if run.Threshold != nil {
		threshold = *run.Threshold
	}
	_, err := s.exec(ctx,
		`INSERT INTO runs (id, mode, query, directory, threshold, dry_run, state, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Mode), run.Query, run.Directory, threshold,
		boolToInt(run.DryRun), StateRunning, formatTime(started),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the outcome of a run. runErr may be nil.
func (s *Store) FinishRun(ctx context.Context, id, state string, iterations int, runErr error) error {
	var message any
	if runErr != nil {
		message = runErr.Error()
	}
	res, err := s.exec(ctx,
		`UPDATE runs SET state = ?, iterations = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		state, iterations, message, formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// RecordChanges stores one row per changed file. A nil score marks a regex
// removal.
func (s *Store) RecordChanges(ctx context.Context, runID string, iteration int, sentence string, score *float64, files []corpus.TextFile) error {
	if len(files) == 0 {
		return nil
	}
	var scoreValue any
	if score != nil {
		scoreValue = *score
	}
	now := formatTime(time.Now())
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin removal tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		for _, f := range files {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO removals (run_id, iteration, sentence, score, file_path, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				runID, iteration, sentence, scoreValue, f.Path, now,
			); err != nil {
				return fmt.Errorf("insert removal: %w", err)
			}
		}
		return tx.Commit()
	})
}

// Recorder returns a purge.Recorder that journals removals under runID.
func (s *Store) Recorder(runID string) purge.Recorder {
	return runRecorder{store: s, runID: runID}
}

type runRecorder struct {
	store *Store
	runID string
}

func (r runRecorder) RecordRemoval(ctx context.Context, removal purge.Removal) error {
	score := removal.Match.Score
	return r.store.RecordChanges(ctx, r.runID, removal.Iteration, removal.Match.Sentence, &score, removal.Changed)
}

// GetRun returns a single run with its removal count.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+`, (SELECT COUNT(1) FROM removals m WHERE m.run_id = r.id)
		 FROM runs r WHERE r.id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + `, (SELECT COUNT(1) FROM removals m WHERE m.run_id = r.id)
		FROM runs r ORDER BY r.started_at DESC, r.rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Removals returns the recorded changes of one run in insertion order.
func (s *Store) Removals(ctx context.Context, runID string) ([]Removal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, iteration, sentence, score, file_path, created_at
		 FROM removals WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list removals: %w", err)
	}
	defer rows.Close()

	var removals []Removal
	for rows.Next() {
		var (
			removal    Removal
			score      sql.NullFloat64
			createdRaw string
		)
		if err := rows.Scan(&removal.RunID, &removal.Iteration, &removal.Sentence, &score, &removal.FilePath, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan removal: %w", err)
		}
		if score.Valid {
			v := score.Float64
			removal.Score = &v
		}
		if created, err := parseTime(createdRaw); err == nil {
			removal.CreatedAt = created
		}
		removals = append(removals, removal)
	}
	return removals, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		mode        string
		threshold   sql.NullFloat64
		dryRun      int
		errorMsg    sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&mode,
		&run.Query,
		&run.Directory,
		&threshold,
		&dryRun,
		&run.State,
		&run.Iterations,
		&errorMsg,
		&startedRaw,
		&finishedRaw,
		&run.Removals,
	); err != nil {
		return nil, err
	}
	run.Mode = Mode(mode)
	run.DryRun = dryRun != 0
	run.ErrorMessage = errorMsg.String
	if threshold.Valid {
		v := threshold.Float64
		run.Threshold = &v
	}
	if started, err := parseTime(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTime(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

// timeLayout has fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(timeLayout, value)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

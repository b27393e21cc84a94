package journal

import "time"

// Mode identifies how a run selected content to remove.
type Mode string

const (
	ModeSimilarity Mode = "similarity"
	ModeRegex      Mode = "regex"
)

// StateRunning marks a run that has started but not finished. A run left in
// this state was interrupted.
const StateRunning = "RUNNING"

// Run is one invocation of a purge.
type Run struct {
	ID        string   `json:"id"`
	Mode      Mode     `json:"mode"`
	Query     string   `json:"query"`
	Directory string   `json:"directory"`
	Threshold *float64 `json:"threshold,omitempty"`
	DryRun    bool     `json:"dry_run"`
	State     string   `json:"state"`

	// Iterations is the number of search/remove cycles; 0 for regex runs.
	Iterations int `json:"iterations"`

	ErrorMessage string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`

	// Removals is the number of file changes recorded for the run.
	Removals int `json:"removals"`
}

// Removal is one file changed by one removal step.
type Removal struct {
	RunID     string    `json:"run_id"`
	Iteration int       `json:"iteration"`
	Sentence  string    `json:"sentence"`
	Score     *float64  `json:"score,omitempty"`
	FilePath  string    `json:"file"`
	CreatedAt time.Time `json:"created_at"`
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"textpurge/internal/config"
	"textpurge/internal/journal"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List purge runs recorded in the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, ok, err := openExistingJournal(cfg)
			if err != nil {
				return err
			}
			if !ok {
				if asJSON {
					return writeJSON(cmd, []*journal.Run{})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded (enable [journal] in the config to record runs)")
				return nil
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				if runs == nil {
					runs = []*journal.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(historyTimeLayout),
					string(run.Mode),
					run.Query,
					run.State + dryRunSuffix(run.DryRun),
					strconv.Itoa(run.Iterations),
					strconv.Itoa(run.Removals),
					run.Directory,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{Header: "Run"},
				{Header: "Started"},
				{Header: "Mode"},
				{Header: "Query", MaxWidth: 40},
				{Header: "State"},
				{Header: "Iter", Align: alignRight},
				{Header: "Changes", Align: alignRight},
				{Header: "Directory", MaxWidth: 40},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list, 0 for all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the removals recorded for one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, ok, err := openExistingJournal(cfg)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", journal.ErrRunNotFound, args[0])
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			removals, err := store.Removals(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			if asJSON {
				if removals == nil {
					removals = []journal.Removal{}
				}
				return writeJSON(cmd, struct {
					Run      *journal.Run      `json:"run"`
					Removals []journal.Removal `json:"removals"`
				}{run, removals})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s (%s, %s%s)\n", run.ID, run.Mode, run.State, dryRunSuffix(run.DryRun))
			fmt.Fprintf(out, "Query: %s\n", run.Query)
			fmt.Fprintf(out, "Directory: %s\n", run.Directory)
			if run.FinishedAt != nil {
				fmt.Fprintf(out, "Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
			}
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error: %s\n", run.ErrorMessage)
			}
			if len(removals) == 0 {
				fmt.Fprintln(out, "No removals recorded")
				return nil
			}
			rows := make([][]string, 0, len(removals))
			for _, removal := range removals {
				score := "-"
				if removal.Score != nil {
					score = fmt.Sprintf("%.3f", *removal.Score)
				}
				rows = append(rows, []string{
					strconv.Itoa(removal.Iteration),
					score,
					removal.FilePath,
					removal.Sentence,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{Header: "Iter", Align: alignRight},
				{Header: "Score", Align: alignRight},
				{Header: "File", MaxWidth: 48},
				{Header: "Removed", MaxWidth: sentenceColumnWidth},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// openExistingJournal opens the journal only if its database exists, so
// reading history never creates one.
func openExistingJournal(cfg *config.Config) (*journal.Store, bool, error) {
	if _, err := os.Stat(cfg.Journal.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat journal: %w", err)
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return nil, false, fmt.Errorf("open journal: %w", err)
	}
	return store, true, nil
}

func dryRunSuffix(dryRun bool) string {
	if dryRun {
		return " (dry run)"
	}
	return ""
}

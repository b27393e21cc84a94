package main

import (
	"errors"

	"github.com/spf13/cobra"

	"textpurge/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var thresholdFlag float64
	var req purgeRequest

	ctx := newCommandContext(&configFlag, &thresholdFlag)

	rootCmd := &cobra.Command{
		Use:   "textpurge [flags] QUERY DIRECTORY",
		Short: "Remove sentences similar to a query from a directory of text files",
		Long: `textpurge scans every *.txt file directly inside DIRECTORY, finds the sentence
most similar to QUERY, deletes every exact copy of it from every file, and
repeats until no sentence scores at or above the threshold.

With --regex, QUERY is an RE2 pattern and every match is deleted in one pass.`,
		Example: `  textpurge "Click here to subscribe." ./articles
  textpurge -t 0.8 --dry-run "All rights reserved." ./articles
  textpurge -r '\[\d+\]' ./articles`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return usageError{err: err}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx.thresholdSet = cmd.Flags().Changed("threshold")
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req.query = args[0]
			req.dir = args[1]
			req.maxIterationsSet = cmd.Flags().Changed("max-iterations")
			return runPurge(cmd, ctx, req)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().Float64VarP(&thresholdFlag, "threshold", "t", config.Default().Search.Threshold, "Minimum similarity score (0-1) for a sentence to match")
	rootCmd.Flags().BoolVarP(&req.regex, "regex", "r", false, "Treat QUERY as a regular expression and delete every match")
	rootCmd.Flags().BoolVarP(&req.dryRun, "dry-run", "n", false, "Show what would change without writing any file")
	rootCmd.Flags().IntVar(&req.maxIterations, "max-iterations", 0, "Cap on search/remove cycles (0 derives it from the corpus size)")

	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// usageError reports malformed command-line input.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// exitCode maps a command error to the process status: 2 for usage errors,
// 1 for anything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.As(err, new(usageError)):
		return 2
	default:
		return 1
	}
}

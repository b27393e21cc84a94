package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"textpurge/internal/corpus"
	"textpurge/internal/logging"
	"textpurge/internal/purge"
)

const sentenceColumnWidth = 72

type searchOutput struct {
	Query     string        `json:"query"`
	Directory string        `json:"directory"`
	Threshold float64       `json:"threshold"`
	Matches   []purge.Match `json:"matches"`
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var top int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [flags] QUERY DIRECTORY",
		Short: "Rank sentences by similarity to QUERY without changing any file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			topN := cfg.Search.TopN
			if cmd.Flags().Changed("top") {
				if top < 0 {
					return fmt.Errorf("--top must be zero or positive, got %d", top)
				}
				topN = top
			}

			dir, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}
			c, err := corpus.Open(dir, corpus.Options{
				Pattern:     cfg.Corpus.Pattern,
				InvalidUTF8: cfg.Corpus.InvalidUTF8,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			if err := c.Preflight(false); err != nil {
				return err
			}

			opts := purge.OptionsFromConfig(cfg)
			matches, err := purge.NewSearcher(c, opts, logger).Search(cmd.Context(), args[0], topN)
			if err != nil {
				return err
			}
			logger.Debug("search finished",
				logging.String("query", args[0]),
				logging.Int("matches", len(matches)),
			)

			if asJSON {
				if matches == nil {
					matches = []purge.Match{}
				}
				return writeJSON(cmd, searchOutput{
					Query:     args[0],
					Directory: dir,
					Threshold: opts.Threshold,
					Matches:   matches,
				})
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No sentences scored at or above %.2f\n", opts.Threshold)
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for i, m := range matches {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					fmt.Sprintf("%.3f", m.Score),
					m.File.Name,
					m.Sentence,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{Header: "#", Align: alignRight},
				{Header: "Score", Align: alignRight},
				{Header: "File"},
				{Header: "Sentence", MaxWidth: sentenceColumnWidth},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "Maximum number of matches to show, 0 for all (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

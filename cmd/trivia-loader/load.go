package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/trivia-loader/internal/app"
	"github.com/heartmarshall/trivia-loader/internal/app/loader"
)

func newLoadCmd(e *env) *cobra.Command {
	var (
		opts       app.LoadOptions
		purge      bool
		dataDir    string
		maxSeasons int
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load season files into the database",
		Long: `Load season files from the data directory.

Without --season, files are discovered as season1.tsv, season2.tsv, ...
starting at LOADER_FIRST_SEASON until a file is missing or --max-seasons
files were loaded (0 = no limit).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *e.loaderCfg
			if purge {
				cfg.Purge = true
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("max-seasons") {
				cfg.MaxSeasons = maxSeasons
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			results, err := app.RunLoad(cmd.Context(), e.log, e.cfg.Database, cfg, opts)
			if err != nil {
				e.log.Error("load failed", slog.String("error", err.Error()))
				return err
			}

			printSummary(cmd, results)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Season, "season", 0, "load only this season number")
	cmd.Flags().StringVar(&opts.File, "file", "", "season file path (requires --season)")
	cmd.Flags().BoolVar(&purge, "purge", false, "empty all tables before loading")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory holding season files")
	cmd.Flags().IntVar(&maxSeasons, "max-seasons", 1, "number of seasons to discover (0 = all)")

	return cmd
}

func printSummary(cmd *cobra.Command, results []loader.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEASON\tEPISODES\tCATEGORIES\tQUESTIONS\tDUP QUESTIONS\tDURATION")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\n",
			r.SeasonNumber, r.Episodes, r.Categories, r.Questions, r.DuplicateQuestions, r.Duration.Round(time.Millisecond))
	}
	_ = w.Flush()
}

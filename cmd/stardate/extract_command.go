package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/logging"
	"stardate/internal/report"
	"stardate/internal/stardate"
	"stardate/internal/store"
)

type recordFilter struct {
	season  int
	episode int
}

func (f recordFilter) validate() error {
	if f.season != 0 {
		if _, ok := stardate.SeasonRangeFor(f.season); !ok {
			return fmt.Errorf("--season must be between 1 and %d", stardate.SeasonCount)
		}
	}
	if f.episode != 0 {
		if _, err := stardate.SeasonFor(f.episode); err != nil {
			return fmt.Errorf("--episode must be between %d and %d", stardate.FirstEpisode, stardate.LastEpisode)
		}
	}
	return nil
}

func (f recordFilter) apply(records []stardate.Record) []stardate.Record {
	return report.Filter(records, f.season, f.episode)
}

func addFilterFlags(cmd *cobra.Command, f *recordFilter) {
	cmd.Flags().IntVar(&f.season, "season", 0, "Only show records from this season (1-7)")
	cmd.Flags().IntVar(&f.episode, "episode", 0, "Only show records from this episode (1-176)")
}

func addTitleFlags(cmd *cobra.Command, opts *titleOptions) {
	cmd.Flags().BoolVar(&opts.skip, "no-titles", false, "Skip the episode title join")
	cmd.Flags().BoolVar(&opts.refresh, "refresh-titles", false, "Ignore the title cache and scrape the episode list again")
	cmd.Flags().StringVar(&opts.htmlDoc, "titles-html", "", "Read titles from a saved copy of the episode list page")
}

type extractOutput struct {
	RunID        string            `json:"run_id"`
	Saved        bool              `json:"saved"`
	TitlesSource string            `json:"titles_source"`
	Stats        stardate.Stats    `json:"stats"`
	Records      []stardate.Record `json:"records"`
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		filter     recordFilter
		titles     titleOptions
		formatFlag string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract stardates from every script and print the records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := filter.validate(); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := resolveFormat(formatFlag, cfg)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			result, err := runPipeline(cmd.Context(), cfg, logger, titles)
			if err != nil {
				return err
			}

			saved := false
			if save || cfg.Output.Save {
				if err := saveRun(cmd.Context(), cfg, logger, result); err != nil {
					return err
				}
				saved = true
			}

			records := filter.apply(result.Records)
			if format == config.FormatJSON {
				return writeJSON(cmd, extractOutput{
					RunID:        result.RunID,
					Saved:        saved,
					TitlesSource: result.TitlesSource,
					Stats:        result.Stats,
					Records:      records,
				})
			}
			if err := report.RecordsTable(records).Render(cmd.OutOrStdout(), format); err != nil {
				return err
			}
			errOut := cmd.ErrOrStderr()
			fmt.Fprintf(errOut, "%d scripts, %d matches, %d dropped (%d sentinel, %d unparseable), %d records\n",
				result.Stats.Scripts, result.Stats.Matches, result.Stats.Dropped(),
				result.Stats.Sentinels, result.Stats.Unparseable, result.Stats.Records)
			if saved {
				fmt.Fprintf(errOut, "Saved run %s\n", result.RunID)
			}
			return nil
		},
	}

	addFilterFlags(cmd, &filter)
	addTitleFlags(cmd, &titles)
	addFormatFlag(cmd, &formatFlag)
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run in the local database (also enabled by output.save)")
	return cmd
}

func saveRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, result *pipelineResult) error {
	lock, err := store.AcquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	run, err := st.SaveRun(ctx, store.RunInput{
		ID:           result.RunID,
		ScriptsDir:   cfg.Paths.ScriptsDir,
		TitlesSource: result.TitlesSource,
		Stats:        result.Stats,
	}, result.Records)
	if err != nil {
		return err
	}
	logger.Info("run saved",
		logging.String(logging.FieldEventType, "run_saved"),
		logging.String(logging.FieldRunID, run.ID),
		logging.Int("records", len(result.Records)),
		logging.String("database", st.Path()))
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/report"
	"stardate/internal/stardate"
	"stardate/internal/store"
)

type showOutput struct {
	Run     *store.Run        `json:"run"`
	Records []stardate.Record `json:"records"`
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var (
		filter     recordFilter
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "show [RUN_ID|latest]",
		Short: "Print the records of a saved run",
		Args:  cobra.MaximumNArgs(1),
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

			id := latestRunAlias
			if len(args) == 1 {
				id = args[0]
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			run, err := lookupRun(cmd.Context(), st, id)
			if err != nil {
				return err
			}
			records, err := st.Records(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			records = filter.apply(records)

			if format == config.FormatJSON {
				if records == nil {
					records = []stardate.Record{}
				}
				return writeJSON(cmd, showOutput{Run: run, Records: records})
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Run %s (%s, titles: %s)\n",
				run.ID, run.CreatedAt.Local().Format(runTimeFormat), run.TitlesSource)
			return report.RecordsTable(records).Render(cmd.OutOrStdout(), format)
		},
	}

	addFilterFlags(cmd, &filter)
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

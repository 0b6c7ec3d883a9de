package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/report"
	"stardate/internal/store"
)

const runTimeFormat = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved extraction runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := resolveFormat(formatFlag, cfg)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			runs, err := st.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 && format != config.FormatJSON {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved runs")
				return nil
			}
			if runs == nil {
				runs = []store.Run{}
			}
			return writeTable(cmd, format, runsTable(runs), runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

func runsTable(runs []store.Run) report.Table {
	tbl := report.Table{
		Headers:      []string{"id", "created", "titles", "scripts", "matches", "dropped", "records"},
		RightAligned: []int{3, 4, 5, 6},
	}
	for _, run := range runs {
		tbl.Rows = append(tbl.Rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(runTimeFormat),
			run.TitlesSource,
			strconv.Itoa(run.Stats.Scripts),
			strconv.Itoa(run.Stats.Matches),
			strconv.Itoa(run.Stats.Dropped()),
			strconv.Itoa(run.Stats.Records),
		})
	}
	return tbl
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete RUN_ID",
		Short: "Delete a saved run and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

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

			run, err := lookupRun(cmd.Context(), st, args[0])
			if err != nil {
				return err
			}
			if err := st.DeleteRun(cmd.Context(), run.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", run.ID)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/report"
)

type summaryOutput struct {
	Records      int                    `json:"records"`
	Seasons      []report.SeasonSummary `json:"seasons"`
	Distribution [10]int                `json:"decimal_distribution"`
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var (
		src        recordSource
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize stardates per season and the decimal digit distribution",
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
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			records, err := src.load(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			seasons := report.SummarizeSeasons(records)
			dist := report.DecimalDistribution(records)

			if format == config.FormatJSON {
				return writeJSON(cmd, summaryOutput{Records: len(records), Seasons: seasons, Distribution: dist})
			}
			out := cmd.OutOrStdout()
			if err := report.SeasonSummaryTable(seasons).Render(out, format); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return report.DistributionTable(dist).Render(out, format)
		},
	}

	addRunFlag(cmd, &src)
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stardate/internal/report"
)

func newChartCommand(ctx *commandContext) *cobra.Command {
	var (
		src    recordSource
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the stardate trend and the decimal digit distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

			opts := report.ChartOptions{
				Width:  cfg.Output.ChartWidth,
				Height: cfg.Output.ChartHeight,
				Color:  colorEnabled(cfg, cmd.OutOrStdout()),
			}
			if width > 0 {
				opts.Width = width
			}
			if height > 0 {
				opts.Height = height
			}

			out := cmd.OutOrStdout()
			for _, line := range renderSectionHeader("Stardate trend", opts.Color) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, report.RenderTrend(report.EpisodeFirstStardates(records), opts))
			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Decimal digits", opts.Color) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, report.RenderDecimalChart(report.DecimalDistribution(records), opts))
			return nil
		},
	}

	addRunFlag(cmd, &src)
	cmd.Flags().IntVar(&width, "width", 0, "Chart width in columns (default from output.chart_width)")
	cmd.Flags().IntVar(&height, "height", 0, "Chart height in rows (default from output.chart_height)")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"stardate/internal/report"
	"stardate/internal/stardate"
)

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Show the episode range of every season",
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
			return writeTable(cmd, format, report.PartitionTable(), stardate.Partition())
		},
	}
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/report"
	"stardate/internal/stardate"
)

type titleJSON struct {
	Episode int    `json:"episode"`
	Season  int    `json:"season"`
	Title   string `json:"episode_title"`
}

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	var (
		opts       titleOptions
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "Show the scraped episode titles",
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

			titles, source, err := fetchTitles(cmd.Context(), cfg, logger, opts)
			if err != nil {
				return err
			}
			if source == titlesDisabled {
				return fmt.Errorf("episode title scraping is disabled (episodes.enabled = false); use --titles-html")
			}

			entries := make([]titleJSON, 0, len(titles))
			for ep, title := range titles {
				season, _ := stardate.SeasonFor(ep)
				entries = append(entries, titleJSON{Episode: ep, Season: season, Title: title})
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Episode < entries[j].Episode })

			if err := writeTable(cmd, format, report.TitlesTable(titles), entries); err != nil {
				return err
			}
			if format != config.FormatJSON {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d titles (source: %s)\n", len(titles), source)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "Ignore the title cache and scrape the episode list again")
	cmd.Flags().StringVar(&opts.htmlDoc, "titles-html", "", "Read titles from a saved copy of the episode list page")
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/preflight"
	"stardate/internal/stardate"
	"stardate/internal/store"
)

type statusOutput struct {
	ConfigPath   string             `json:"config_path"`
	ConfigExists bool               `json:"config_exists"`
	ScriptsDir   string             `json:"scripts_dir"`
	Database     string             `json:"database"`
	SavedRuns    int                `json:"saved_runs"`
	Checks       []preflight.Result `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the script corpus, directories and episode list source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			savedRuns := countSavedRuns(cmd, cfg)

			if jsonOutput {
				if err := writeJSON(cmd, statusOutput{
					ConfigPath:   ctx.configPath,
					ConfigExists: ctx.configExists,
					ScriptsDir:   cfg.Paths.ScriptsDir,
					Database:     cfg.DatabasePath(),
					SavedRuns:    savedRuns,
					Checks:       results,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := colorEnabled(cfg, out)
				for _, line := range statusLines(ctx, cfg, savedRuns, results, colorize) {
					fmt.Fprintln(out, line)
				}
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return stardate.Wrap(stardate.ErrInputContract, "status", "preflight",
					fmt.Sprintf("%d of %d checks failed", len(failed), len(results)), nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func statusLines(ctx *commandContext, cfg *config.Config, savedRuns int, results []preflight.Result, colorize bool) []string {
	lines := renderSectionHeader("Configuration", colorize)
	configKind := statusOK
	if !ctx.configExists {
		configKind = statusWarn
	}
	lines = append(lines,
		renderStatusLine("Config file", configKind, fmt.Sprintf("%s (exists: %s)", ctx.configPath, yesNo(ctx.configExists)), colorize),
		renderStatusLine("Encoding", statusInfo, cfg.Corpus.Encoding, colorize),
		renderStatusLine("Title scraping", statusInfo, yesNo(cfg.Episodes.Enabled), colorize),
	)
	runKind := statusInfo
	runMessage := strconv.Itoa(savedRuns)
	if savedRuns < 0 {
		runKind = statusWarn
		runMessage = "unavailable"
	}
	lines = append(lines, renderStatusLine("Saved runs", runKind, runMessage, colorize))

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	for _, result := range results {
		kind := statusOK
		if !result.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	return lines
}

// countSavedRuns returns -1 when the run store cannot be read.
func countSavedRuns(cmd *cobra.Command, cfg *config.Config) int {
	st, err := store.Open(cfg)
	if err != nil {
		return -1
	}
	defer st.Close()
	runs, err := st.Runs(cmd.Context(), 0)
	if err != nil {
		return -1
	}
	return len(runs)
}

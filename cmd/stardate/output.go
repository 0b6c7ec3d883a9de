package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/report"
)

// resolveFormat picks the --format flag over output.format.
func resolveFormat(flagValue string, cfg *config.Config) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" && cfg != nil {
		format = cfg.Output.Format
	}
	switch format {
	case "":
		return config.FormatTable, nil
	case "md":
		return config.FormatMarkdown, nil
	case config.FormatTable, config.FormatCSV, config.FormatMarkdown, config.FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use table, csv, markdown or json)", flagValue)
	}
}

func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "f", "", "Output format: table, csv, markdown or json (default from config)")
}

// writeTable renders tbl in format, or encodes jsonValue when format is json.
func writeTable(cmd *cobra.Command, format string, tbl report.Table, jsonValue any) error {
	if format == config.FormatJSON {
		return writeJSON(cmd, jsonValue)
	}
	return tbl.Render(cmd.OutOrStdout(), format)
}

func colorEnabled(cfg *config.Config, w io.Writer) bool {
	if cfg == nil {
		return shouldColorize(w)
	}
	switch cfg.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return shouldColorize(w)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

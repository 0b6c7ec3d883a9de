package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateEpisodes(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.ScriptsDir) == "" {
		return errors.New("paths.scripts_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateCorpus() error {
	pattern := c.Corpus.FilePattern
	if strings.Count(pattern, "%") != 1 || strings.Count(pattern, "%d") != 1 {
		return fmt.Errorf("corpus.file_pattern %q must contain exactly one %%d and no other verbs", pattern)
	}
	switch c.Corpus.Encoding {
	case EncodingUTF8, EncodingWindows1252, EncodingISO88591:
	default:
		return fmt.Errorf("corpus.encoding %q is not supported (use %s, %s or %s)",
			c.Corpus.Encoding, EncodingUTF8, EncodingWindows1252, EncodingISO88591)
	}
	if c.Corpus.Workers < 1 || c.Corpus.Workers > maxWorkers {
		return fmt.Errorf("corpus.workers must be between 1 and %d", maxWorkers)
	}
	return nil
}

func (c *Config) validateEpisodes() error {
	if !c.Episodes.Enabled {
		return nil
	}
	parsed, err := url.Parse(c.Episodes.SourceURL)
	if err != nil {
		return fmt.Errorf("episodes.source_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("episodes.source_url %q must use http or https", c.Episodes.SourceURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("episodes.source_url %q has no host", c.Episodes.SourceURL)
	}
	if c.Episodes.TimeoutSeconds <= 0 {
		return errors.New("episodes.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case FormatTable, FormatCSV, FormatMarkdown, FormatJSON:
	default:
		return fmt.Errorf("output.format %q is not supported", c.Output.Format)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color %q must be auto, always or never", c.Output.Color)
	}
	if c.Output.ChartWidth < 10 {
		return errors.New("output.chart_width must be at least 10")
	}
	if c.Output.ChartHeight < 3 {
		return errors.New("output.chart_height must be at least 3")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}
}

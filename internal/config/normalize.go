package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCorpus()
	c.normalizeEpisodes()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("STARDATE_SCRIPTS_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ScriptsDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.ScriptsDir, err = expandPath(strings.TrimSpace(c.Paths.ScriptsDir)); err != nil {
		return fmt.Errorf("paths.scripts_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCorpus() {
	c.Corpus.FilePattern = strings.TrimSpace(c.Corpus.FilePattern)
	if c.Corpus.FilePattern == "" {
		c.Corpus.FilePattern = defaultFilePattern
	}
	c.Corpus.Encoding = canonicalEncoding(c.Corpus.Encoding)
	if c.Corpus.Workers == 0 {
		c.Corpus.Workers = defaultWorkers
	}
}

func (c *Config) normalizeEpisodes() {
	if value, ok := os.LookupEnv("STARDATE_EPISODES_URL"); ok && strings.TrimSpace(value) != "" {
		c.Episodes.SourceURL = value
	}
	c.Episodes.SourceURL = strings.TrimSpace(c.Episodes.SourceURL)
	if c.Episodes.SourceURL == "" {
		c.Episodes.SourceURL = defaultEpisodesURL
	}
	c.Episodes.Selector = strings.TrimSpace(c.Episodes.Selector)
	if c.Episodes.Selector == "" {
		c.Episodes.Selector = defaultEpisodesSelector
	}
	c.Episodes.UserAgent = strings.TrimSpace(c.Episodes.UserAgent)
	if c.Episodes.UserAgent == "" {
		c.Episodes.UserAgent = defaultEpisodesUserAgent
	}
	if c.Episodes.TimeoutSeconds == 0 {
		c.Episodes.TimeoutSeconds = defaultEpisodesTimeout
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "":
		c.Output.Format = defaultOutputFormat
	case "md":
		c.Output.Format = FormatMarkdown
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultColor
	}
	if c.Output.ChartWidth == 0 {
		c.Output.ChartWidth = defaultChartWidth
	}
	if c.Output.ChartHeight == 0 {
		c.Output.ChartHeight = defaultChartHeight
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "console", "json":
	default:
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// canonicalEncoding folds common aliases onto the supported encoding names.
// Unknown names pass through lowercased so Validate can report them.
func canonicalEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf8", "utf-8":
		return EncodingUTF8
	case "cp1252", "windows1252", "windows-1252":
		return EncodingWindows1252
	case "latin1", "latin-1", "iso8859-1", "iso-8859-1":
		return EncodingISO88591
	default:
		return name
	}
}

package testsupport

import (
	"path/filepath"
	"testing"

	"stardate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Title scraping is disabled so tests never touch the network unless an
// option turns it back on.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ScriptsDir = filepath.Join(base, "scripts")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Episodes.Enabled = false
	cfgVal.Output.Color = config.ColorNever

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithEpisodesURL enables title scraping against url, usually an httptest server.
func WithEpisodesURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Episodes.Enabled = true
		b.cfg.Episodes.SourceURL = url
		b.cfg.Episodes.TimeoutSeconds = 5
	}
}

// WithEncoding sets the script encoding on the test config.
func WithEncoding(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Corpus.Encoding = name
	}
}

// WithWorkers sets the corpus worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Corpus.Workers = n
	}
}

// WithFullCorpus writes a synthetic script for every episode into the
// scripts directory.
func WithFullCorpus() ConfigOption {
	return func(b *configBuilder) {
		WriteCorpus(b.t, b.cfg)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

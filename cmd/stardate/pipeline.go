package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"stardate/internal/config"
	"stardate/internal/corpus"
	"stardate/internal/episodes"
	"stardate/internal/logging"
	"stardate/internal/preflight"
	"stardate/internal/stardate"
)

type titleOptions struct {
	skip    bool
	refresh bool
	htmlDoc string
}

type pipelineResult struct {
	RunID        string            `json:"run_id"`
	TitlesSource string            `json:"titles_source"`
	Stats        stardate.Stats    `json:"stats"`
	Records      []stardate.Record `json:"records"`
}

// Titles sources reported when no mapping was joined.
const (
	titlesSkipped     = "skipped"
	titlesDisabled    = "disabled"
	titlesUnavailable = "unavailable"
)

// runPipeline loads the full corpus, extracts stardates and joins titles.
func runPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts titleOptions) (*pipelineResult, error) {
	runID := uuid.NewString()
	ctx = logging.ContextWithRunID(ctx, runID)
	logger = logging.WithContext(ctx, logger)

	if check := preflight.CheckScripts(cfg); !check.Passed {
		return nil, stardate.Wrap(stardate.ErrInputContract, "corpus", "check", check.Detail, nil)
	}

	scripts, err := corpus.NewLoader(cfg, logger).Load(ctx)
	if err != nil {
		return nil, err
	}

	extractor := stardate.NewExtractor(
		stardate.WithExpectedEpisodes(stardate.EpisodeCount),
		stardate.WithWorkers(cfg.Corpus.Workers),
		stardate.WithLogger(logger),
	)
	records, stats, err := extractor.Extract(ctx, scripts)
	if err != nil {
		return nil, err
	}

	titles, source := resolveTitles(ctx, cfg, logger, opts)
	return &pipelineResult{
		RunID:        runID,
		TitlesSource: source,
		Stats:        stats,
		Records:      stardate.Join(records, titles),
	}, nil
}

// resolveTitles never fails the run: a missing title mapping only means the
// left join attaches nothing.
func resolveTitles(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts titleOptions) (stardate.Titles, string) {
	if opts.skip {
		return nil, titlesSkipped
	}
	titles, source, err := fetchTitles(ctx, cfg, logger, opts)
	if err != nil {
		logging.WarnWithContext(logger, "episode titles unavailable", "titles_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check episodes.source_url or pass --titles-html"),
			logging.String(logging.FieldImpact, "records are reported without episode titles"))
		return nil, titlesUnavailable
	}
	return titles, source
}

// fetchTitles resolves the title mapping from a saved page, the cache or the
// network. A disabled scraper yields no titles and no error.
func fetchTitles(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts titleOptions) (stardate.Titles, string, error) {
	if path := strings.TrimSpace(opts.htmlDoc); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, string(episodes.SourceFile), err
		}
		titles, err := episodes.LoadHTMLFile(expanded, cfg.Episodes.Selector)
		return titles, string(episodes.SourceFile), err
	}
	if !cfg.Episodes.Enabled {
		return nil, titlesDisabled, nil
	}

	client, err := episodes.NewFromConfig(cfg)
	if err != nil {
		return nil, string(episodes.SourceNetwork), err
	}
	cachePath := ""
	if cfg.Episodes.CacheEnabled {
		cachePath = cfg.TitleCachePath()
	}
	resolver := episodes.NewResolver(client, episodes.NewCache(cachePath, logger), client.SourceURL(), logger)
	titles, source, err := resolver.Resolve(ctx, opts.refresh)
	return titles, string(source), err
}

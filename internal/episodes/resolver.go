package episodes

import (
	"context"
	"log/slog"
	"time"

	"stardate/internal/logging"
	"stardate/internal/stardate"
)

// Source names where a resolved title mapping came from.
type Source string

const (
	SourceCache   Source = "cache"
	SourceNetwork Source = "network"
	SourceFile    Source = "file"
)

// Resolver serves titles from the cache when possible and from the fetcher
// otherwise, refreshing the cache after every successful fetch.
type Resolver struct {
	fetcher   Fetcher
	cache     *Cache
	sourceURL string
	logger    *slog.Logger
	now       func() time.Time
}

// NewResolver wires a fetcher to an optional cache. sourceURL keys the cache
// so that changing the configured page invalidates it.
func NewResolver(fetcher Fetcher, cache *Cache, sourceURL string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		fetcher:   fetcher,
		cache:     cache,
		sourceURL: sourceURL,
		logger:    logging.NewComponentLogger(logger, "episodes"),
		now:       time.Now,
	}
}

// Resolve returns the title mapping. refresh skips the cache read.
func (r *Resolver) Resolve(ctx context.Context, refresh bool) (stardate.Titles, Source, error) {
	if !refresh {
		if snap, ok := r.cache.Load(r.sourceURL); ok {
			r.logger.Info("episode titles loaded from cache",
				logging.String(logging.FieldEventType, "titles_cached"),
				logging.Int("titles", len(snap.Entries)),
				logging.String("fetched_at", snap.FetchedAt.Format(time.RFC3339)))
			return snap.Titles(), SourceCache, nil
		}
	}

	start := r.now()
	titles, err := r.fetcher.FetchTitles(ctx)
	if err != nil {
		return nil, SourceNetwork, err
	}
	r.logger.Info("episode titles fetched",
		logging.String(logging.FieldEventType, "titles_fetched"),
		logging.String("source_url", r.sourceURL),
		logging.Int("titles", len(titles)),
		logging.Duration("elapsed", r.now().Sub(start)))

	if err := r.cache.Store(r.sourceURL, titles, r.now()); err != nil {
		logging.WarnWithContext(r.logger, "failed to store episode title cache", "titlecache_store_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"),
			logging.String(logging.FieldImpact, "next run will fetch titles again"))
	}
	return titles, SourceNetwork, nil
}

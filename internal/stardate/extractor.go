package stardate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"stardate/internal/logging"
)

// Stats counts what happened to every match during a run.
type Stats struct {
	Scripts     int `json:"scripts"`
	Lines       int `json:"lines"`
	Matches     int `json:"matches"`
	Sentinels   int `json:"sentinels"`
	Unparseable int `json:"unparseable"`
	Records     int `json:"records"`
}

// Dropped is the number of matches that did not become records.
func (s Stats) Dropped() int {
	return s.Sentinels + s.Unparseable
}

// Extractor runs the match, flatten, clean pipeline over a set of scripts.
type Extractor struct {
	expected int
	workers  int
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithExpectedEpisodes makes Extract reject inputs that do not hold exactly n
// scripts. Zero disables the check.
func WithExpectedEpisodes(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.expected = n
		}
	}
}

// WithWorkers bounds how many scripts are scanned concurrently.
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger routes extractor diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor builds an Extractor. Without options it accepts any number of
// scripts and scans them one at a time.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{workers: 1, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(e.logger, "extractor")
	return e
}

// Extract returns the cleaned records for scripts ordered by episode and then
// by match position. The result does not depend on the worker count.
func (e *Extractor) Extract(ctx context.Context, scripts []RawScript) ([]Record, Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ordered, err := e.validate(scripts)
	if err != nil {
		return nil, Stats{}, err
	}

	matches := make([][]string, len(ordered))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range ordered {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = ExtractMatches(ordered[i].Lines)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("scan scripts: %w", err)
	}

	var rows []Row
	lines := 0
	for i, script := range ordered {
		lines += len(script.Lines)
		for _, match := range matches[i] {
			rows = append(rows, Row{Episode: script.Episode, Match: match})
		}
	}

	records, stats, err := e.Clean(rows)
	if err != nil {
		return nil, Stats{}, err
	}
	stats.Scripts = len(ordered)
	stats.Lines = lines

	e.logger.Info("stardate extraction complete",
		logging.String(logging.FieldEventType, "extract_complete"),
		logging.Int("scripts", stats.Scripts),
		logging.Int("matches", stats.Matches),
		logging.Int("records", stats.Records),
		logging.Int("dropped", stats.Dropped()))
	return records, stats, nil
}

// Clean applies prefix stripping, season assignment, numeric cleaning and
// decimal digit derivation to rows, dropping rows without a stardate. Only an
// unknown episode number is an error.
func (e *Extractor) Clean(rows []Row) ([]Record, Stats, error) {
	stats := Stats{Matches: len(rows)}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		season, err := SeasonFor(row.Episode)
		if err != nil {
			return nil, Stats{}, err
		}
		raw := StripPrefix(row.Match)
		if IsSentinel(raw) {
			stats.Sentinels++
			e.logger.Debug("stardate match rejected",
				logging.Int(logging.FieldEpisode, row.Episode),
				logging.String("match", raw),
				logging.String("reason", "sentinel"))
			continue
		}
		value, ok := ParseStardate(raw)
		if !ok {
			stats.Unparseable++
			e.logger.Debug("stardate match rejected",
				logging.Int(logging.FieldEpisode, row.Episode),
				logging.String("match", raw),
				logging.String("reason", "unparseable"))
			continue
		}
		records = append(records, Record{
			Episode:  row.Episode,
			Season:   season,
			Stardate: value,
			Decimal:  DecimalDigit(value),
		})
	}
	stats.Records = len(records)
	return records, stats, nil
}

func (e *Extractor) validate(scripts []RawScript) ([]RawScript, error) {
	if e.expected > 0 && len(scripts) != e.expected {
		return nil, Wrap(ErrInputContract, "extract", "validate",
			fmt.Sprintf("expected %d scripts, got %d", e.expected, len(scripts)), nil)
	}
	seen := make(map[int]struct{}, len(scripts))
	for _, script := range scripts {
		if _, err := SeasonFor(script.Episode); err != nil {
			return nil, err
		}
		if _, dup := seen[script.Episode]; dup {
			return nil, Wrap(ErrInputContract, "extract", "validate",
				fmt.Sprintf("episode %d supplied more than once", script.Episode), nil)
		}
		seen[script.Episode] = struct{}{}
	}
	ordered := slices.Clone(scripts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Episode < ordered[j].Episode
	})
	return ordered, nil
}

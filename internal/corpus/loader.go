package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"stardate/internal/config"
	"stardate/internal/logging"
	"stardate/internal/stardate"
)

// Loader reads episode scripts using the corpus settings of a Config.
type Loader struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewLoader constructs a Loader. A nil logger discards output.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{cfg: cfg, logger: logging.NewComponentLogger(logger, "corpus")}
}

// Episodes lists every episode number of the corpus in order.
func Episodes() []int {
	out := make([]int, 0, stardate.EpisodeCount)
	for ep := stardate.FirstEpisode; ep <= stardate.LastEpisode; ep++ {
		out = append(out, ep)
	}
	return out
}

// Load reads the full corpus, one script per episode.
func (l *Loader) Load(ctx context.Context) ([]stardate.RawScript, error) {
	scripts, err := l.LoadEpisodes(ctx, Episodes())
	if err != nil {
		return nil, err
	}
	if len(scripts) != stardate.EpisodeCount {
		return nil, stardate.Wrap(stardate.ErrInputContract, "corpus", "load",
			fmt.Sprintf("expected %d scripts, got %d", stardate.EpisodeCount, len(scripts)), nil)
	}
	return scripts, nil
}

// LoadEpisodes reads the scripts for the given episodes, preserving their
// order in the result.
func (l *Loader) LoadEpisodes(ctx context.Context, episodes []int) ([]stardate.RawScript, error) {
	if l == nil || l.cfg == nil {
		return nil, stardate.Wrap(stardate.ErrConfiguration, "corpus", "load", "loader has no configuration", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := decoderFor(l.cfg.Corpus.Encoding); err != nil {
		return nil, stardate.Wrap(stardate.ErrConfiguration, "corpus", "load", "", err)
	}

	start := time.Now()
	scripts := make([]stardate.RawScript, len(episodes))
	workers := l.cfg.Corpus.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, episode := range episodes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, err := l.readScript(episode)
			if err != nil {
				return err
			}
			scripts[i] = stardate.RawScript{Episode: episode, Lines: lines}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lines := 0
	for _, script := range scripts {
		lines += len(script.Lines)
	}
	l.logger.Info("script corpus loaded",
		logging.String(logging.FieldEventType, "corpus_loaded"),
		logging.String("scripts_dir", l.cfg.Paths.ScriptsDir),
		logging.Int("scripts", len(scripts)),
		logging.Int("lines", lines),
		logging.Duration("elapsed", time.Since(start)))
	return scripts, nil
}

func (l *Loader) readScript(episode int) ([]string, error) {
	path := l.cfg.ScriptPath(episode)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stardate.Wrap(stardate.ErrInputContract, "corpus", "read",
				fmt.Sprintf("script for episode %d missing at %s", episode, path), nil)
		}
		return nil, stardate.Wrap(stardate.ErrTransient, "corpus", "read",
			fmt.Sprintf("open script for episode %d", episode), err)
	}
	defer file.Close()

	lines, err := ReadLines(file, l.cfg.Corpus.Encoding)
	if err != nil {
		return nil, stardate.Wrap(stardate.ErrInputContract, "corpus", "read",
			fmt.Sprintf("decode script for episode %d", episode), err)
	}
	l.logger.Debug("script read",
		logging.Int(logging.FieldEpisode, episode),
		logging.Int("lines", len(lines)))
	return lines, nil
}

// Missing reports which episodes have no script file. It does not read the
// files, so it is cheap enough for status checks.
func (l *Loader) Missing() ([]int, error) {
	var missing []int
	for _, ep := range Episodes() {
		info, err := os.Stat(l.cfg.ScriptPath(ep))
		switch {
		case err == nil && !info.IsDir():
		case err == nil || errors.Is(err, fs.ErrNotExist):
			missing = append(missing, ep)
		default:
			return nil, fmt.Errorf("stat script for episode %d: %w", ep, err)
		}
	}
	return missing, nil
}

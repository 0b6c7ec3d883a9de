package preflight

import (
	"context"

	"stardate/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Failed filters results down to the checks that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDir("Scripts directory", cfg.Paths.ScriptsDir),
		CheckScripts(cfg),
		CheckWritableDir("Data directory", cfg.Paths.DataDir),
		CheckWritableDir("Log directory", cfg.Paths.LogDir),
	}

	if cfg.Episodes.Enabled {
		results = append(results, CheckEpisodeSource(ctx, cfg.Episodes.SourceURL, cfg.Episodes.UserAgent))
	}
	return results
}

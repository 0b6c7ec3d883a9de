package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"stardate/internal/config"
	"stardate/internal/stardate"
	"stardate/internal/store"
)

const latestRunAlias = "latest"

// recordSource selects between a fresh extraction and a saved run.
type recordSource struct {
	runID string
}

func addRunFlag(cmd *cobra.Command, src *recordSource) {
	cmd.Flags().StringVar(&src.runID, "run", "", "Use a saved run (ID, unique ID prefix or \"latest\") instead of extracting")
}

// load returns records without titles when extracting, since summaries and
// charts never show them.
func (s recordSource) load(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]stardate.Record, error) {
	if strings.TrimSpace(s.runID) == "" {
		result, err := runPipeline(ctx, cfg, logger, titleOptions{skip: true})
		if err != nil {
			return nil, err
		}
		return result.Records, nil
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	run, err := lookupRun(ctx, st, s.runID)
	if err != nil {
		return nil, err
	}
	return st.Records(ctx, run.ID)
}

func lookupRun(ctx context.Context, st *store.Store, id string) (*store.Run, error) {
	id = strings.TrimSpace(id)
	var (
		run *store.Run
		err error
	)
	if strings.EqualFold(id, latestRunAlias) {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.GetRun(ctx, id)
	}
	if errors.Is(err, stardate.ErrNotFound) {
		if strings.EqualFold(id, latestRunAlias) {
			return nil, fmt.Errorf("no saved runs; use `stardate extract --save` first: %w", err)
		}
		return nil, fmt.Errorf("run %q not found: %w", id, err)
	}
	return run, err
}

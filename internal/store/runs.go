package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stardate/internal/stardate"
)

// RunInput describes a run about to be saved. An empty ID is replaced with a
// fresh UUID.
type RunInput struct {
	ID           string
	ScriptsDir   string
	TitlesSource string
	Stats        stardate.Stats
}

// Run is a saved extraction run.
type Run struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	ScriptsDir   string         `json:"scripts_dir"`
	TitlesSource string         `json:"titles_source,omitempty"`
	Stats        stardate.Stats `json:"stats"`
}

// timeLayout keeps a fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = "id, created_at, scripts_dir, titles_source, scripts, lines, matches, sentinels, unparseable, records"

// SaveRun writes the run and its records in a single transaction.
func (s *Store) SaveRun(ctx context.Context, in RunInput, records []stardate.Record) (*Run, error) {
	ctx = ensureContext(ctx)
	run := &Run{
		ID:           strings.TrimSpace(in.ID),
		CreatedAt:    time.Now().UTC(),
		ScriptsDir:   in.ScriptsDir,
		TitlesSource: in.TitlesSource,
		Stats:        in.Stats,
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	err := retryOnBusy(ctx, func() error {
		return s.saveRunTx(ctx, run, records)
	})
	if err != nil {
		return nil, fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return run, nil
}

func (s *Store) saveRunTx(ctx context.Context, run *Run, records []stardate.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.CreatedAt.Format(timeLayout), run.ScriptsDir, run.TitlesSource,
		run.Stats.Scripts, run.Stats.Lines, run.Stats.Matches,
		run.Stats.Sentinels, run.Stats.Unparseable, run.Stats.Records,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stardates (run_id, position, episode, season, episode_title, stardate, stardate_decimal)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		var title sql.NullString
		if rec.Title != "" {
			title = sql.NullString{String: rec.Title, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, rec.Episode, rec.Season, title, rec.Stardate, rec.Decimal); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Runs lists saved runs, newest first. A limit <= 0 returns all of them.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns the run whose ID equals id or, failing that, is the only ID
// starting with id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, stardate.Wrap(stardate.ErrNotFound, "store", "get run", "run id required", nil)
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE substr(id, 1, ?) = ? ORDER BY created_at DESC, rowid DESC LIMIT 2", len(id), id)
	if err != nil {
		return nil, fmt.Errorf("query run prefix: %w", err)
	}
	defer rows.Close()
	var matches []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, stardate.Wrap(stardate.ErrNotFound, "store", "get run", fmt.Sprintf("no run %q", id), nil)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// LatestRun returns the most recently saved run.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	runs, err := s.Runs(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, stardate.Wrap(stardate.ErrNotFound, "store", "latest run", "no saved runs", nil)
	}
	return &runs[0], nil
}

// Records returns the records of a run in their saved order.
func (s *Store) Records(ctx context.Context, runID string) ([]stardate.Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT episode, season, episode_title, stardate, stardate_decimal
		 FROM stardates WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []stardate.Record
	for rows.Next() {
		var (
			rec   stardate.Record
			title sql.NullString
		)
		if err := rows.Scan(&rec.Episode, &rec.Season, &title, &rec.Stardate, &rec.Decimal); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Title = title.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteRun removes a run and its records.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, "DELETE FROM stardates WHERE run_id = ?", runID); err != nil {
			return fmt.Errorf("delete records: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", runID)
		if err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return stardate.Wrap(stardate.ErrNotFound, "store", "delete run", fmt.Sprintf("no run %q", runID), nil)
		}
		return tx.Commit()
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run       Run
		createdAt string
	)
	err := row.Scan(&run.ID, &createdAt, &run.ScriptsDir, &run.TitlesSource,
		&run.Stats.Scripts, &run.Stats.Lines, &run.Stats.Matches,
		&run.Stats.Sentinels, &run.Stats.Unparseable, &run.Stats.Records)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse run timestamp %q: %w", createdAt, err)
	}
	run.CreatedAt = parsed
	return &run, nil
}

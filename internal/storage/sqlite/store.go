// Package sqlite persists run history: the configuration submitted for each
// job together with the raw results payload and the computed summary, so a
// finished run's report survives process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports a run id with no stored row.
var ErrNotFound = errors.New("run not found")

// Run is one pipeline execution tracked locally. Config, Results and
// Summary are stored as JSON exactly as produced; interpretation recomputes
// from Results on demand.
type Run struct {
	ID        string          `json:"id"`
	JobID     string          `json:"job_id"`
	InputFile string          `json:"input_file"`
	Status    string          `json:"status"`
	Config    json.RawMessage `json:"config,omitempty"`
	Results   json.RawMessage `json:"results,omitempty"`
	Summary   json.RawMessage `json:"summary,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is a SQLite-backed run-history store.
type Store struct {
	db *sql.DB
}

// New opens (and if needed initializes) the store at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		input_file TEXT NOT NULL,
		status TEXT NOT NULL,
		config TEXT,
		results TEXT,
		summary TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_job_id ON runs(job_id);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`)
	return err
}

// SaveRun inserts or replaces a run by id.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	now := time.Now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
		 (id, job_id, input_file, status, config, results, summary, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.JobID, run.InputFile, run.Status,
		nullableJSON(run.Config), nullableJSON(run.Results), nullableJSON(run.Summary),
		run.CreatedAt, run.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun fetches a run by local id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	return s.getWhere(ctx, "id = ?", id)
}

// GetRunByJobID fetches the most recent run for an engine job id.
func (s *Store) GetRunByJobID(ctx context.Context, jobID string) (*Run, error) {
	return s.getWhere(ctx, "job_id = ?", jobID)
}

func (s *Store) getWhere(ctx context.Context, where string, arg any) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, job_id, input_file, status, config, results, summary, created_at, updated_at
		 FROM runs WHERE `+where+` ORDER BY created_at DESC LIMIT 1`, arg)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest-first, up to limit (0 means no limit).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, job_id, input_file, status, config, results, summary, created_at, updated_at
	          FROM runs ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run by local id.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var cfg, results, summary sql.NullString
	if err := row.Scan(&run.ID, &run.JobID, &run.InputFile, &run.Status,
		&cfg, &results, &summary, &run.CreatedAt, &run.UpdatedAt); err != nil {
		return nil, err
	}
	if cfg.Valid {
		run.Config = json.RawMessage(cfg.String)
	}
	if results.Valid {
		run.Results = json.RawMessage(results.String)
	}
	if summary.Valid {
		run.Summary = json.RawMessage(summary.String)
	}
	return &run, nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// Package runlog persists run summaries in a local SQLite database so past
// extraction runs can be inspected without digging through log output.
package runlog

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/adventureatlas/guide-extractor/internal/domain"
)

// Store records and lists run summaries. It satisfies domain.RunRecorder.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the run-history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, domain.StorageError("open run log", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, domain.StorageError("enable WAL", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, domain.StorageError("init run log schema", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	lines_processed INTEGER NOT NULL,
	lines_successful INTEGER NOT NULL,
	lines_failed INTEGER NOT NULL,
	unknown_countries INTEGER NOT NULL,
	enrich_requested INTEGER NOT NULL,
	enrich_fulfilled INTEGER NOT NULL,
	enrich_fell_back INTEGER NOT NULL,
	enrich_batch_failures INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Record inserts one run summary.
func (s *Store) Record(ctx context.Context, stats domain.RunStats) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (
	run_id, source, started_at, finished_at,
	lines_processed, lines_successful, lines_failed, unknown_countries,
	enrich_requested, enrich_fulfilled, enrich_fell_back, enrich_batch_failures
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.RunID,
		stats.Source,
		stats.StartedAt.UTC().Format(time.RFC3339Nano),
		stats.FinishedAt.UTC().Format(time.RFC3339Nano),
		stats.Parse.Processed,
		stats.Parse.Successful,
		stats.Parse.Failed,
		stats.Parse.UnknownCountries,
		stats.Enrichment.Requested,
		stats.Enrichment.Fulfilled,
		stats.Enrichment.FellBack,
		stats.Enrichment.BatchFailures,
	)
	if err != nil {
		return domain.StorageError("record run", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.RunStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, source, started_at, finished_at,
	lines_processed, lines_successful, lines_failed, unknown_countries,
	enrich_requested, enrich_fulfilled, enrich_fell_back, enrich_batch_failures
FROM runs
ORDER BY started_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, domain.StorageError("query runs", err)
	}
	defer rows.Close()

	var result []domain.RunStats
	for rows.Next() {
		var (
			stats             domain.RunStats
			started, finished string
		)
		if err := rows.Scan(
			&stats.RunID,
			&stats.Source,
			&started,
			&finished,
			&stats.Parse.Processed,
			&stats.Parse.Successful,
			&stats.Parse.Failed,
			&stats.Parse.UnknownCountries,
			&stats.Enrichment.Requested,
			&stats.Enrichment.Fulfilled,
			&stats.Enrichment.FellBack,
			&stats.Enrichment.BatchFailures,
		); err != nil {
			return nil, domain.StorageError("scan run", err)
		}
		stats.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		stats.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		result = append(result, stats)
	}
	return result, rows.Err()
}

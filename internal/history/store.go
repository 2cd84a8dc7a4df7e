package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"napi/internal/batch"
	"napi/internal/config"
)

// Store manages the download journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the journal database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Paths.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(filepath.Join(cfg.Paths.HistoryDir, "history.lock")),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the journal database.
func (s *Store) Path() string {
	return s.path
}

// RecordBatch appends a finished batch and its per-input results. A file lock
// beside the database serializes appends from concurrent napi invocations.
func (s *Store) RecordBatch(ctx context.Context, report *batch.Report, lang string) error {
	if report == nil {
		return nil
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored, skipped, notFound, failed := report.Counts()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO batches (id, started_at, finished_at, language, stored, skipped, not_found, failed)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.BatchID,
		report.StartedAt.Format(time.RFC3339Nano),
		report.FinishedAt.Format(time.RFC3339Nano),
		lang,
		stored, skipped, notFound, failed,
	); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for position, result := range report.Results {
		var errText any
		if result.Err != nil {
			errText = result.Err.Error()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO batch_inputs (batch_id, position, input, target, outcome, service, bytes, error)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.BatchID,
			position,
			result.Input,
			nullableString(result.Target),
			string(result.Outcome),
			nullableString(result.Service),
			result.Bytes,
			errText,
		); err != nil {
			return fmt.Errorf("insert batch input: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// RecentBatches returns the most recently finished batches, newest first.
func (s *Store) RecentBatches(ctx context.Context, limit int) ([]BatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, language, stored, skipped, not_found, failed
         FROM batches ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var records []BatchRecord
	for rows.Next() {
		var record BatchRecord
		var started, finished string
		if err := rows.Scan(&record.ID, &started, &finished, &record.Language,
			&record.Stored, &record.Skipped, &record.NotFound, &record.Failed); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if record.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if record.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// BatchInputs returns the per-input results of one batch in input order.
func (s *Store) BatchInputs(ctx context.Context, batchID string) ([]InputRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, input, target, outcome, service, bytes, error
         FROM batch_inputs WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch inputs: %w", err)
	}
	defer rows.Close()

	var records []InputRecord
	for rows.Next() {
		var record InputRecord
		var target, service, errText sql.NullString
		if err := rows.Scan(&record.Position, &record.Input, &target,
			&record.Outcome, &service, &record.Bytes, &errText); err != nil {
			return nil, fmt.Errorf("scan batch input: %w", err)
		}
		record.Target = target.String
		record.Service = service.String
		record.Error = errText.String
		records = append(records, record)
	}
	return records, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

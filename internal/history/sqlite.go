package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore creates a new SQLite-based history store.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		sets INTEGER NOT NULL,
		files INTEGER NOT NULL,
		emitted INTEGER NOT NULL,
		skipped_duplicates INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a new build record to the store.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, started, finished, sets, files, emitted, skipped_duplicates, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Started.UnixMilli(), rec.Finished.UnixMilli(),
		rec.Sets, rec.Files, rec.Emitted, rec.SkippedDuplicates,
		rec.Outcome, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// Recent retrieves up to limit records, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started, finished, sets, files, emitted, skipped_duplicates, outcome, error
		 FROM builds ORDER BY started DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var started, finished int64
		if err := rows.Scan(&rec.ID, &started, &finished, &rec.Sets, &rec.Files,
			&rec.Emitted, &rec.SkippedDuplicates, &rec.Outcome, &rec.Error); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		rec.Started = time.UnixMilli(started)
		rec.Finished = time.UnixMilli(finished)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate build records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

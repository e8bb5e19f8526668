// Package ledger keeps a SQLite history of sync runs and the per-document
// results of each run.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory ledger.
const MemoryPath = ":memory:"

// Totals are the counters of a finished run.
type Totals struct {
	Total   int
	Synced  int
	Skipped int
	Failed  int
}

// Run is one row of the runs table.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time // Zero while the run is in progress
	Totals
}

// DocumentRecord is the result of processing one note in a run.
type DocumentRecord struct {
	Source      string // Path relative to the vault root
	Destination string // Written file, empty unless synced
	Result      string
	Fingerprint string
	Message     string
}

// Store implements the ledger using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the ledger at dbPath. Use MemoryPath for an
// in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Every pooled connection to ":memory:" would get its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		total INTEGER NOT NULL DEFAULT 0,
		synced INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		source TEXT NOT NULL,
		destination TEXT,
		result TEXT NOT NULL,
		fingerprint TEXT,
		message TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id);
	CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// BeginRun inserts a run row.
func (s *Store) BeginRun(ctx context.Context, runID string, startedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, started_at) VALUES (?, ?)",
		runID, startedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordDocument stores the result of one note.
func (s *Store) RecordDocument(ctx context.Context, runID string, rec DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (run_id, source, destination, result, fingerprint, message) VALUES (?, ?, ?, ?, ?, ?)",
		runID, normalizeKey(rec.Source), rec.Destination, rec.Result, rec.Fingerprint, rec.Message,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// FinishRun stores the final counters of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, finishedAt time.Time, totals Totals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE runs SET finished_at = ?, total = ?, synced = ?, skipped = ?, failed = ? WHERE id = ?",
		finishedAt.UnixMilli(), totals.Total, totals.Synced, totals.Skipped, totals.Failed, runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update run: unknown run %q", runID)
	}
	return nil
}

// LastFingerprint returns the fingerprint recorded the last time source was
// synced. ok is false when source has never been synced.
func (s *Store) LastFingerprint(ctx context.Context, source string) (fingerprint string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fp sql.NullString
	err = s.db.QueryRowContext(ctx,
		"SELECT fingerprint FROM documents WHERE source = ? AND result = 'synced' ORDER BY id DESC LIMIT 1",
		normalizeKey(source),
	).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query fingerprint: %w", err)
	}
	return fp.String, true, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, finished_at, total, synced, skipped, failed FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.Total, &r.Synced, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		if finished.Valid {
			r.FinishedAt = time.UnixMilli(finished.Int64)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Documents returns the document records of a run in insertion order.
func (s *Store) Documents(ctx context.Context, runID string) ([]DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT source, destination, result, fingerprint, message FROM documents WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRecord
	for rows.Next() {
		var (
			rec           DocumentRecord
			dest, fp, msg sql.NullString
		)
		if err := rows.Scan(&rec.Source, &dest, &rec.Result, &fp, &msg); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		rec.Destination, rec.Fingerprint, rec.Message = dest.String, fp.String, msg.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// normalizeKey folds source paths to NFC so a note renamed on macOS (NFD)
// and Linux (NFC) maps to one history.
func normalizeKey(path string) string {
	return norm.NFC.String(filepath.ToSlash(path))
}

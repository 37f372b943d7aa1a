// Package fetchlog persists fetch outcomes so repeated runs of the client
// leave an auditable record: which paths were fetched, whether the cache
// served them, how many attempts were spent, and how they ended.
package fetchlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Entry is one recorded fetch outcome.
type Entry struct {
	TraceID      string
	Path         string
	CacheHit     bool
	Attempts     int
	Status       int
	ErrorMessage string
	DurationMS   int64
	CreatedAt    time.Time
}

// Writer persists fetch log entries.
type Writer interface {
	Write(ctx context.Context, entry Entry) error
}

// NoopWriter ignores all log writes.
type NoopWriter struct{}

func (NoopWriter) Write(_ context.Context, _ Entry) error { return nil }

// SQLWriter persists entries to SQLite or Postgres.
type SQLWriter struct {
	db      *sql.DB
	dialect string
}

// NewSQLiteWriter opens (or creates) an SQLite-backed fetch log.
func NewSQLiteWriter(dsn string) (*SQLWriter, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = "itemfetch-fetches.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite fetch log: %w", err)
	}
	w := &SQLWriter{db: db, dialect: "sqlite"}
	if err := w.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

// NewPostgresWriter opens a Postgres-backed fetch log.
func NewPostgresWriter(dsn string) (*SQLWriter, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres fetch log: %w", err)
	}
	w := &SQLWriter{db: db, dialect: "postgres"}
	if err := w.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *SQLWriter) init() error {
	if err := w.db.Ping(); err != nil {
		return fmt.Errorf("ping %s fetch log: %w", w.dialect, err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS fetch_logs (
	id INTEGER PRIMARY KEY,
	trace_id TEXT,
	path TEXT NOT NULL,
	cache_hit INTEGER NOT NULL,
	attempts INTEGER NOT NULL,
	status INTEGER NOT NULL,
	error_message TEXT,
	duration_ms INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

	if w.dialect == "postgres" {
		ddl = `
CREATE TABLE IF NOT EXISTS fetch_logs (
	id BIGSERIAL PRIMARY KEY,
	trace_id TEXT,
	path TEXT NOT NULL,
	cache_hit BOOLEAN NOT NULL,
	attempts INTEGER NOT NULL,
	status INTEGER NOT NULL,
	error_message TEXT,
	duration_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`
	}

	if _, err := w.db.Exec(ddl); err != nil {
		return fmt.Errorf("initialize fetch log schema: %w", err)
	}
	return nil
}

// Write persists one entry. A zero CreatedAt defaults to now.
func (w *SQLWriter) Write(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO fetch_logs
	(trace_id, path, cache_hit, attempts, status, error_message, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if w.dialect == "postgres" {
		query = `INSERT INTO fetch_logs
	(trace_id, path, cache_hit, attempts, status, error_message, duration_ms, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	}

	_, err := w.db.ExecContext(ctx, query,
		entry.TraceID, entry.Path, entry.CacheHit, entry.Attempts,
		entry.Status, entry.ErrorMessage, entry.DurationMS, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("write fetch log entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (w *SQLWriter) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT trace_id, path, cache_hit, attempts, status, error_message, duration_ms, created_at
	FROM fetch_logs ORDER BY created_at DESC LIMIT ?`
	if w.dialect == "postgres" {
		query = `SELECT trace_id, path, cache_hit, attempts, status, error_message, duration_ms, created_at
	FROM fetch_logs ORDER BY created_at DESC LIMIT $1`
	}

	rows, err := w.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query fetch log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.TraceID, &e.Path, &e.CacheHit, &e.Attempts,
			&e.Status, &e.ErrorMessage, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fetch log row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (w *SQLWriter) Close() error {
	return w.db.Close()
}

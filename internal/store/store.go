// Package store persists visitor page views and analytics events in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/resume-slides/internal/analytics"
)

// Store is the SQLite-backed persistence layer.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// SQLite serialises writers; a single connection also keeps ":memory:"
	// databases alive across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

var schema = []string{
	`PRAGMA journal_mode = WAL`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,  -- salted hash, never the raw address
		user_agent TEXT,
		path TEXT,
		at INTEGER NOT NULL       -- unix milliseconds
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_at ON visitors(at)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		category TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		value REAL,
		session TEXT NOT NULL DEFAULT '',
		at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS events_category ON events(category, action)`,
	`CREATE INDEX IF NOT EXISTS events_at ON events(at)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, at)
		VALUES (?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.At.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Record implements analytics.Sink.
func (s *Store) Record(ctx context.Context, e analytics.Event) error {
	var value sql.NullFloat64
	if e.Value != nil {
		value = sql.NullFloat64{Float64: *e.Value, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, action, category, label, value, session, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Action, e.Category, e.Label, value, e.Session, e.At.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording event %s/%s: %w", e.Category, e.Action, err)
	}
	return nil
}

// Cleanup deletes visitors and events older than retention and reports how
// many rows went.
func (s *Store) Cleanup(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	cutoff := now.Add(-retention).UnixMilli()

	var total int64
	for _, table := range []string{"visitors", "events"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE at < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleaning %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

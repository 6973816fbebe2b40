// Package history keeps an optional on-disk log of issued requests in a
// SQLite database, enabled through the history_path config field.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded request.
type Entry struct {
	Time     time.Time
	Method   string
	URL      string
	Status   string // error message or "ok"
	Duration time.Duration
}

// Log is a request-history store backed by SQLite.
type Log struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at TIMESTAMP NOT NULL,
	method TEXT NOT NULL,
	url TEXT NOT NULL,
	status TEXT NOT NULL,
	duration_us INTEGER NOT NULL
)`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Record appends one entry.
func (l *Log) Record(e Entry) error {
	_, err := l.db.Exec(
		`INSERT INTO requests (at, method, url, status, duration_us) VALUES (?, ?, ?, ?, ?)`,
		e.Time, e.Method, e.URL, e.Status, e.Duration.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}

// Recent returns the newest n entries, newest first.
func (l *Log) Recent(n int) ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT at, method, url, status, duration_us FROM requests ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationUs int64
		if err := rows.Scan(&e.Time, &e.Method, &e.URL, &e.Status, &durationUs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Duration = time.Duration(durationUs) * time.Microsecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (l *Log) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Package queue implements the durable offline write queue: mutating
// HTTP requests that could not reach the service are appended to a
// dedicated SQLite database and replayed strictly in enqueue order once
// connectivity returns.
//
// The queue database lives alongside the main database with a "-queue"
// suffix, in WAL mode, so queue writes never contend with entity reads.
package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Request is one captured mutating HTTP call. It is immutable from the
// moment it is enqueued: replay reissues exactly what was captured.
type Request struct {
	ID         string            `json:"id"`
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body,omitempty"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// Entry is a queued request together with its queue position.
type Entry struct {
	Position int64
	Request  Request
}

// FailedRequest is a queued request the service rejected during replay.
// It is kept for inspection and never retried automatically.
type FailedRequest struct {
	Request    Request
	StatusCode int
	Response   string
	FailedAt   time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS queued_requests (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	url TEXT NOT NULL,
	method TEXT NOT NULL,
	headers TEXT NOT NULL,
	body BLOB,
	enqueued_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS failed_requests (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	url TEXT NOT NULL,
	method TEXT NOT NULL,
	headers TEXT NOT NULL,
	body BLOB,
	enqueued_at TIMESTAMP NOT NULL,
	status_code INTEGER NOT NULL,
	response TEXT,
	failed_at TIMESTAMP NOT NULL
);
`

// Store is the durable request log.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the queue database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open queue database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install queue schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Enqueue appends a request to the tail of the queue.
func (s *Store) Enqueue(ctx context.Context, req Request) error {
	headers, err := json.Marshal(req.Headers)
	if err != nil {
		return fmt.Errorf("failed to serialize headers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO queued_requests (id, url, method, headers, body, enqueued_at) VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, req.URL, req.Method, string(headers), req.Body, req.EnqueuedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue request: %w", err)
	}
	return nil
}

// Pending returns every queued request in enqueue order.
func (s *Store) Pending(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, id, url, method, headers, body, enqueued_at FROM queued_requests ORDER BY position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var headers string
		if err := rows.Scan(&e.Position, &e.Request.ID, &e.Request.URL, &e.Request.Method, &headers, &e.Request.Body, &e.Request.EnqueuedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(headers), &e.Request.Headers); err != nil {
			return nil, fmt.Errorf("corrupt headers for queued request %s: %w", e.Request.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Len reports the number of queued requests.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queued_requests`).Scan(&n)
	return n, err
}

func (s *Store) remove(ctx context.Context, position int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM queued_requests WHERE position = ?`, position)
	return err
}

// markFailed moves a queued request into the dead-letter table.
func (s *Store) markFailed(ctx context.Context, e Entry, statusCode int, response string) error {
	headers, err := json.Marshal(e.Request.Headers)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO failed_requests (id, url, method, headers, body, enqueued_at, status_code, response, failed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Request.ID, e.Request.URL, e.Request.Method, string(headers), e.Request.Body,
		e.Request.EnqueuedAt, statusCode, response, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM queued_requests WHERE position = ?`, e.Position); err != nil {
		return err
	}
	return tx.Commit()
}

// Failed lists dead-lettered requests for inspection.
func (s *Store) Failed(ctx context.Context) ([]FailedRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, method, headers, body, enqueued_at, status_code, response, failed_at
		 FROM failed_requests ORDER BY position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failed []FailedRequest
	for rows.Next() {
		var f FailedRequest
		var headers string
		if err := rows.Scan(&f.Request.ID, &f.Request.URL, &f.Request.Method, &headers, &f.Request.Body,
			&f.Request.EnqueuedAt, &f.StatusCode, &f.Response, &f.FailedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(headers), &f.Request.Headers); err != nil {
			return nil, err
		}
		failed = append(failed, f)
	}
	return failed, rows.Err()
}

// PurgeFailed drops inspected dead-letter entries.
func (s *Store) PurgeFailed(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM failed_requests`)
	return err
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records copy runs and generated documents in a SQLite
// database next to the configuration file.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFile is the database file name.
const DefaultFile = "notepacket.db"

// Kind names what produced an entry.
type Kind string

const (
	KindCopy   Kind = "copy"
	KindPacket Kind = "packet"
	KindFolder Kind = "folder"
)

// Status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry is one journal row.
type Entry struct {
	ID         int64     `json:"id" yaml:"id"`
	Kind       Kind      `json:"kind" yaml:"kind"`
	Subject    string    `json:"subject" yaml:"subject"`
	OutputPath string    `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Pages      int       `json:"pages" yaml:"pages"`
	Copied     int       `json:"copied" yaml:"copied"`
	Missing    int       `json:"missing" yaml:"missing"`
	Status     string    `json:"status" yaml:"status"`
	Message    string    `json:"message,omitempty" yaml:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the journal database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the journal at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			output_path TEXT,
			pages INTEGER NOT NULL DEFAULT 0,
			copied INTEGER NOT NULL DEFAULT 0,
			missing INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			message TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_kind ON history(kind)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e and returns its id. A zero CreatedAt is set to now and
// an empty Status to ok.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.Status == "" {
		e.Status = StatusOK
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO history (kind, subject, output_path, pages, copied, missing, status, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(e.Kind), e.Subject, e.OutputPath, e.Pages, e.Copied, e.Missing, e.Status, e.Message,
		e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("recording %s entry: %w", e.Kind, err)
	}
	return res.LastInsertId()
}

// QueryOptions filters List.
type QueryOptions struct {
	// Kind restricts entries to one kind. Empty means all.
	Kind Kind

	// Limit caps the number of entries. Zero means no limit.
	Limit int
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	query := `SELECT id, kind, subject, output_path, pages, copied, missing, status, message, created_at
		FROM history WHERE 1=1`
	var args []any
	if opts.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(opts.Kind))
	}
	query += ` ORDER BY id DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			kind    string
			output  sql.NullString
			message sql.NullString
			created string
		)
		if err := rows.Scan(&e.ID, &kind, &e.Subject, &output, &e.Pages, &e.Copied, &e.Missing,
			&e.Status, &message, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Kind = Kind(kind)
		e.OutputPath = output.String
		e.Message = message.String
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Package notebook is the note-saving collaborator: a SQLite-backed
// store of lookups the reader chose to keep (term, passage, answer,
// provenance). The context engine itself never persists anything; only
// explicit saves land here.
package notebook

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.lectern/notebook.db"

// Note is one saved lookup.
type Note struct {
	ID        int64     `json:"id"`
	Term      string    `json:"term"`
	Context   string    `json:"context"`
	Answer    string    `json:"answer,omitempty"`
	Source    string    `json:"source,omitempty"` // document/book label supplied by the host
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOpts controls pagination and filtering for List.
type ListOpts struct {
	Limit  int
	Offset int
	Term   string // filter: only notes for this term (case-insensitive)
}

// Store defines the notebook storage interface.
type Store interface {
	Save(ctx context.Context, n *Note) (int64, error)
	Get(ctx context.Context, id int64) (*Note, error)
	List(ctx context.Context, opts ListOpts) ([]*Note, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Close() error
}

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// Config holds configuration for NewStore.
type Config struct {
	DBPath string
}

// NewStore opens (creating if needed) the notebook database.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg Config) (Store, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = expandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// migrate creates the schema if it doesn't exist. Idempotent.
func (s *SQLiteStore) migrate() error {
	ddl := `
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	term       TEXT NOT NULL,
	context    TEXT NOT NULL DEFAULT '',
	answer     TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL DEFAULT '',
	language   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_notes_term ON notes(term COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("creating notes schema: %w", err)
	}
	return nil
}

// Save inserts a note and returns its id.
func (s *SQLiteStore) Save(ctx context.Context, n *Note) (int64, error) {
	if strings.TrimSpace(n.Term) == "" {
		return 0, fmt.Errorf("note term is required")
	}
	created := n.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (term, context, answer, source, language, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.Term, n.Context, n.Answer, n.Source, n.Language, created)
	if err != nil {
		return 0, fmt.Errorf("inserting note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading note id: %w", err)
	}
	n.ID = id
	n.CreatedAt = created
	return id, nil
}

// Get returns a note by id, or an error when it does not exist.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Note, error) {
	n := &Note{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, term, context, answer, source, language, created_at
		 FROM notes WHERE id = ?`, id,
	).Scan(&n.ID, &n.Term, &n.Context, &n.Answer, &n.Source, &n.Language, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("note %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading note %d: %w", id, err)
	}
	return n, nil
}

// List returns notes newest first.
func (s *SQLiteStore) List(ctx context.Context, opts ListOpts) ([]*Note, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	query := `SELECT id, term, context, answer, source, language, created_at FROM notes`
	args := []any{}
	if t := strings.TrimSpace(opts.Term); t != "" {
		query += ` WHERE term = ? COLLATE NOCASE`
		args = append(args, t)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		n := &Note{}
		if err := rows.Scan(&n.ID, &n.Term, &n.Context, &n.Answer, &n.Source, &n.Language, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Delete removes a note by id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("note %d not found", id)
	}
	return nil
}

// Count returns the number of saved notes.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting notes: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

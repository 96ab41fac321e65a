package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// Sentinel errors for store operations.
var (
	ErrNotFound     = errors.New("entry not found")
	ErrAmbiguousID  = errors.New("entry id prefix matches several entries")
	ErrEmptyContent = errors.New("entry content cannot be empty")
	ErrEmptyKind    = errors.New("entry kind cannot be empty")
)

// Default location of the session database, under the user cache directory.
const (
	appDir      = "clip2md"
	defaultFile = "session.db"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT    NOT NULL UNIQUE,
	kind       TEXT    NOT NULL,
	content    TEXT    NOT NULL,
	created_at INTEGER NOT NULL
)`

// Entry is one stored paste.
type Entry struct {
	ID        string
	Kind      string // "HTML", "PDF" or "TEXT"
	Content   string
	CreatedAt time.Time
}

// Store is a SQLite-backed paste session.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the session database path in the user cache directory.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache directory: %w", err)
	}
	return filepath.Join(cacheDir, appDir, defaultFile), nil
}

// Open opens or creates the session database at path.
// If path is empty, DefaultPath is used.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// migrate creates the schema when the database is new.
func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating entries table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("writing schema version: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Add appends an entry to the session. A missing ID is generated and a zero
// CreatedAt is set to now. Returns the stored entry.
func (s *Store) Add(ctx context.Context, entry Entry) (Entry, error) {
	entry, err := prepare(entry)
	if err != nil {
		return Entry{}, err
	}
	if err := insert(ctx, s.db, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns all entries in paste order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, content, created_at
		FROM entries ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.Kind, &entry.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entry.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// Get retrieves the entry whose ID starts with prefix. A full ID always
// matches; a shorter prefix must match exactly one entry.
func (s *Store) Get(ctx context.Context, prefix string) (Entry, error) {
	if prefix == "" {
		return Entry{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, content, created_at
		FROM entries WHERE id LIKE ? ESCAPE '\'
		ORDER BY seq LIMIT 2
	`, likeEscaper.Replace(prefix)+"%")
	if err != nil {
		return Entry{}, fmt.Errorf("querying entry: %w", err)
	}
	defer rows.Close()

	var matches []Entry
	for rows.Next() {
		var entry Entry
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.Kind, &entry.Content, &createdAt); err != nil {
			return Entry{}, fmt.Errorf("scanning entry: %w", err)
		}
		entry.CreatedAt = time.UnixMilli(createdAt)
		if entry.ID == prefix {
			return entry, nil
		}
		matches = append(matches, entry)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, fmt.Errorf("iterating entries: %w", err)
	}

	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return Entry{}, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// likeEscaper escapes LIKE wildcards in user-supplied prefixes.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Count returns the number of entries in the session.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries")
	if err != nil {
		return 0, fmt.Errorf("clearing entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared entries: %w", err)
	}
	return n, nil
}

// ReplaceWith atomically replaces the whole session with a single entry.
func (s *Store) ReplaceWith(ctx context.Context, entry Entry) (Entry, error) {
	entry, err := prepare(entry)
	if err != nil {
		return Entry{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return Entry{}, fmt.Errorf("clearing entries: %w", err)
	}
	if err := insert(ctx, tx, entry); err != nil {
		return Entry{}, err
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("committing transaction: %w", err)
	}
	return entry, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, entry Entry) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO entries (id, kind, content, created_at)
		VALUES (?, ?, ?, ?)
	`, entry.ID, entry.Kind, entry.Content, entry.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

// prepare validates entry and fills in its ID and timestamp.
func prepare(entry Entry) (Entry, error) {
	if entry.Kind == "" {
		return Entry{}, ErrEmptyKind
	}
	if entry.Content == "" {
		return Entry{}, ErrEmptyContent
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return entry, nil
}

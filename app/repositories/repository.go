package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

//go:embed schema.sql
var schemaFS embed.FS

// Store owns the pooled SQLite connection and the per-call timeout shared by
// all repositories.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// Open opens (creating if necessary) the SQLite database at path, applies
// the recommended pragmas and runs the embedded schema migration.
func Open(path string, timeout time.Duration) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Readers must not block the writer, and FK integrity is load-bearing
	// for comment threading.
	pragmas := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=3000;`,
		`PRAGMA foreign_keys=ON;`,
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{db: db, timeout: timeout}, nil
}

func migrate(db *sql.DB) error {
	schema, err := fs.ReadFile(schemaFS, "schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(schema))
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Users returns the user repository bound to this store.
func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }

// Posts returns the post repository bound to this store.
func (s *Store) Posts() *PostRepository { return &PostRepository{store: s} }

// Comments returns the comment repository bound to this store.
func (s *Store) Comments() *CommentRepository { return &CommentRepository{store: s} }

// opCtx derives the bounded context every store call runs under.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// mapError translates driver-level failures into the repository error
// taxonomy. Anything that smells like a connectivity or timeout problem
// becomes ErrStoreUnavailable.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	case isUniqueViolation(err, "users.username"):
		return ErrDuplicateUsername
	default:
		return err
	}
}

// isUniqueViolation matches SQLite's "UNIQUE constraint failed: table.column"
// message for the given column.
func isUniqueViolation(err error, col string) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") &&
		strings.Contains(msg, strings.ToLower(col))
}

package identcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// ErrLocked reports that another process holds the cache lock.
var ErrLocked = errors.New("identify cache is locked by another process")

// Store manages identification cache persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	path   string
	maxAge time.Duration
}

// Open initializes or connects to the cache database inside dir, evicting
// entries older than maxAge. The directory is created when missing.
func Open(dir string, maxAge time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "identify.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(dir, "identify.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath, maxAge: maxAge}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	if err := store.evictExpired(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database and releases the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS identifications (
    path       TEXT PRIMARY KEY,
    size       INTEGER NOT NULL,
    mtime_ns   INTEGER NOT NULL,
    payload    TEXT    NOT NULL,
    created_at TEXT    NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) evictExpired(ctx context.Context) error {
	if s.maxAge <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().Add(-s.maxAge).Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM identifications WHERE created_at < ?`, cutoff); err != nil {
		return fmt.Errorf("evict expired entries: %w", err)
	}
	return nil
}

// Get returns the cached identification payload for path, or ok=false when
// the entry is absent or the file's size or mtime changed since it was
// stored.
func (s *Store) Get(ctx context.Context, path string) ([]byte, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, nil
	}

	var (
		size    int64
		mtimeNS int64
		payload string
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT size, mtime_ns, payload FROM identifications WHERE path = ?`, path)
	if err := row.Scan(&size, &mtimeNS, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	if size != info.Size() || mtimeNS != info.ModTime().UnixNano() {
		return nil, false, nil
	}
	return []byte(payload), true, nil
}

// Put stores the identification payload for path, stamped with the file's
// current size and modification time.
func (s *Store) Put(ctx context.Context, path string, payload []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat cached file: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO identifications (path, size, mtime_ns, payload, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET
             size = excluded.size,
             mtime_ns = excluded.mtime_ns,
             payload = excluded.payload,
             created_at = excluded.created_at`,
		path, info.Size(), info.ModTime().UnixNano(), string(payload), now)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

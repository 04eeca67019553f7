package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"moviesync/internal/logging"
)

// Reserved id codes recorded in the mapping table. Everything positive is a
// real TMDB id.
const (
	// IDDefault marks an input whose lookup was never attempted.
	IDDefault int64 = 0
	// IDNoResult marks an attempted lookup that found no match.
	IDNoResult int64 = -1
	// IDNoExtract marks an input the selected naming pattern did not parse.
	IDNoExtract int64 = -2
	// IDBadResponse marks a lookup whose response was not the expected shape.
	IDBadResponse int64 = -3
)

// IsSentinel reports whether id is one of the reserved codes rather than a
// real catalog id.
func IsSentinel(id int64) bool {
	return id <= 0
}

// Store manages mapping and metadata persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the database at path, acquiring an
// exclusive file lock so only one run can write the store at a time.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "store")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("store %s is locked by another run", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: path, logger: logger}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	logger.Debug("opened store", logging.String("path", path))
	return store, nil
}

// Close closes the database connection and releases the store lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Stats summarizes the persisted state.
type Stats struct {
	MappingRows     int
	ResolvedInputs  int
	ManualOverrides int
	CachedIDs       int
}

// ReadStats returns counts describing the persisted mapping and cache.
func (s *Store) ReadStats(ctx context.Context) (Stats, error) {
	var stats Stats
	queries := []struct {
		dest  *int
		query string
	}{
		{&stats.MappingRows, "SELECT COUNT(1) FROM mapping"},
		{&stats.ResolvedInputs, "SELECT COUNT(1) FROM mapping WHERE tmdb_id > 0"},
		{&stats.ManualOverrides, "SELECT COUNT(1) FROM mapping WHERE tmdb_id_man > 0"},
		{&stats.CachedIDs, "SELECT COUNT(1) FROM details"},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return Stats{}, fmt.Errorf("read stats: %w", err)
		}
	}
	return stats, nil
}

// Package cache provides TTL caches for upstream API responses: a
// thread-safe in-memory store and a persistent SQLite-backed store.
//
// The TTL is applied at read time, so configuration changes take effect
// immediately for existing entries.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// DefaultTTL is the default time-to-live for cached entries.
	DefaultTTL = 60 * time.Minute
)

// Store is the cache contract consumed by the API gateway. Implementations
// must be safe for concurrent use. An expired entry is indistinguishable
// from a missing one; Set overwrites unconditionally (last-write-wins).
type Store interface {
	Get(key string, ttl time.Duration) ([]byte, bool)
	Set(key string, data []byte)
}

// DB is a persistent cache backed by SQLite. Unlike the in-memory store it
// survives process restarts, so repeated runs over the same library don't
// re-fetch unchanged metadata.
type DB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// NewDB opens (or creates) the cache database at dbPath and ensures all
// cache tables exist.
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	c := &DB{db: db, path: dbPath}
	for _, schema := range AllCacheSchemas {
		if _, err := c.db.Exec(schema); err != nil {
			closeErr := c.db.Close()
			return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
		}
	}

	return c, nil
}

// Close closes the database connection. Safe to call more than once.
func (c *DB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Get retrieves a cached value, treating entries older than ttl as absent.
// Read errors are logged and reported as a miss so a broken cache degrades
// to direct fetching instead of failing lookups.
func (c *DB) Get(key string, ttl time.Duration) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db == nil {
		return nil, false
	}

	query := fmt.Sprintf(`
		SELECT data, cached_at
		FROM %s
		WHERE cache_key = ?
	`, KinopoiskCacheTable)

	var data []byte
	var cachedAt time.Time
	err := c.db.QueryRow(query, key).Scan(&data, &cachedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		slog.Warn("Failed to query cache", "key", key, "error", err)
		return nil, false
	}

	age := time.Now().UTC().Sub(cachedAt)
	if age > ttl {
		slog.Debug("Cache entry expired", "key", key, "age", age)
		return nil, false
	}

	return data, true
}

// Set stores a value in the cache, replacing any previous entry for the key.
// Write errors are logged; a failed cache write never fails the caller.
func (c *DB) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return
	}

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (cache_key, data, cached_at)
		VALUES (?, ?, ?)
	`, KinopoiskCacheTable)

	if _, err := c.db.Exec(query, key, data, time.Now().UTC()); err != nil {
		slog.Warn("Failed to write cache entry", "key", key, "error", err)
	}
}

// ClearExpired removes entries older than ttl.
func (c *DB) ClearExpired(ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	cutoff := time.Now().UTC().Add(-ttl)
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE cached_at < ?
	`, KinopoiskCacheTable)

	result, err := c.db.Exec(query, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clear expired cache: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		slog.Info("Cleared expired cache entries", "count", rows)
	}

	return nil
}

// ClearAll removes every cache entry. Returns the number of rows deleted.
func (c *DB) ClearAll() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return 0, nil
	}

	query := fmt.Sprintf("DELETE FROM %s", KinopoiskCacheTable)
	result, err := c.db.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Debug("Cache cleared", "rows_deleted", rows)
	return rows, nil
}

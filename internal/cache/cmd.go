package cache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// ClearCmd represents the cache clear subcommand.
type ClearCmd struct {
	Expired bool `help:"Only remove entries older than the configured TTL"`
}

func (c *ClearCmd) Run() error {
	dbFile := viper.GetString("cache.dbfile")

	cacheDB, err := NewDB(dbFile)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer func() { _ = cacheDB.Close() }()

	if c.Expired {
		ttl := ttlFromConfig()
		if err := cacheDB.ClearExpired(ttl); err != nil {
			return err
		}
		slog.Info("Expired cache entries cleared", "database", dbFile, "ttl", ttl)
		return nil
	}

	rows, err := cacheDB.ClearAll()
	if err != nil {
		return err
	}
	slog.Info("Cache cleared", "database", dbFile, "rows_deleted", rows)
	return nil
}

// ttlFromConfig returns the configured cache TTL, falling back to the
// default when unset or invalid.
func ttlFromConfig() time.Duration {
	ttl := viper.GetDuration("kinopoisk.cache_ttl")
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

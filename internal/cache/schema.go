package cache

// KinopoiskCacheTable is the table holding raw Kinopoisk API responses,
// keyed by endpoint URL.
const KinopoiskCacheTable = "kinopoisk_cache"

// KinopoiskCacheSchema defines the schema for the Kinopoisk response cache.
const KinopoiskCacheSchema = `
CREATE TABLE IF NOT EXISTS kinopoisk_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data BLOB NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_kinopoisk_cached_at ON kinopoisk_cache(cached_at);
`

// AllCacheSchemas lists every cache table schema to initialize on open.
var AllCacheSchemas = []string{
	KinopoiskCacheSchema,
}

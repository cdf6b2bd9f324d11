package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/kinoteka/kinoteka/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles bool
	UpdatePosters  bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles: config.OverwriteFiles,
		UpdatePosters:  config.UpdatePosters,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.UpdatePosters = state.UpdatePosters
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults: a fresh
// viper, overwriting enabled and a dummy Kinopoisk token. State is restored
// when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.OverwriteFiles = true
	config.UpdatePosters = false
	viper.Set("kinopoisk.api_token", "test-token")
	viper.Set("kinopoisk.cache_ttl", "1m")
	viper.Set("kinopoisk.max_rps", 1000)

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, so a previously unset key stays set.
	})
}

// SetupTestCache points the cache database at a file inside the test
// environment and returns the cache directory.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	viper.Set("cache.dbfile", env.Path("cache", "test-cache.db"))
	viper.Set("kinopoisk.cache_ttl", "24h")

	return cacheDir
}

// SetupLibraryDB configures the library database for end-to-end tests and
// returns the database path.
func SetupLibraryDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("library.db")

	SetViperValue(t, "library.enabled", true)
	SetViperValue(t, "library.dbfile", dbPath)

	return dbPath
}

// SetupMarkdownOutput points markdown output at the test environment root.
func SetupMarkdownOutput(t *testing.T, env *TestEnv) {
	t.Helper()

	SetViperValue(t, "markdownoutputdir", env.RootDir())
}

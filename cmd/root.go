package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/kinoteka/kinoteka/cmd/enrich"
	"github.com/kinoteka/kinoteka/cmd/film"
	"github.com/kinoteka/kinoteka/cmd/search"
	"github.com/kinoteka/kinoteka/internal/cache"
	"github.com/kinoteka/kinoteka/internal/config"
	kerrors "github.com/kinoteka/kinoteka/internal/errors"
	"github.com/kinoteka/kinoteka/internal/kinopoisk"
)

// CLI represents the complete command structure for the kinoteka application
type CLI struct {
	// Global flags
	Overwrite     bool `help:"Overwrite existing markdown files when processing"`
	UpdatePosters bool `help:"Re-download poster images even if they already exist"`

	// Library database flags
	Library   bool   `help:"Enable library SQLite output" default:"true"`
	LibraryDB string `help:"Path to library SQLite database file" default:"./kinoteka.db"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Enrich EnrichCmd `cmd:"" help:"Enrich a media library with Kinopoisk metadata"`
	Film   FilmCmd   `cmd:"" help:"Fetch a single film by Kinopoisk ID"`
	Search SearchCmd `cmd:"" help:"Search films by keyword"`
	Cache  CacheCmd  `cmd:"" help:"Manage the response cache"`
}

// EnrichCmd represents the library enrichment command
type EnrichCmd struct {
	InputDir   string `short:"d" help:"Library directory to scan for media files" required:""`
	Recursive  bool   `short:"r" help:"Scan subdirectories recursively" default:"true"`
	Output     string `short:"o" help:"Subdirectory under markdown output directory" default:"films"`
	JSON       bool   `help:"Write all records to a JSON export"`
	JSONOutput string `help:"Path to JSON output file (defaults to json/kinoteka.json)"`
	NoPosters  bool   `help:"Skip downloading poster images" default:"false"`
	DryRun     bool   `help:"Show what would be enriched without fetching" default:"false"`
}

// FilmCmd represents the single-film fetch command
type FilmCmd struct {
	ID     int    `arg:"" help:"Kinopoisk film ID"`
	Write  bool   `short:"w" help:"Write a markdown note instead of printing"`
	Output string `short:"o" help:"Subdirectory under markdown output directory" default:"films"`
	Poster bool   `help:"Download the poster image when writing" default:"true"`
}

// SearchCmd represents the keyword search command
type SearchCmd struct {
	Keyword       []string `arg:"" help:"Search keyword"`
	NoInteractive bool     `help:"Print the result listing instead of the interactive picker"`
	Limit         int      `short:"n" help:"Maximum number of results to print" default:"10"`
	Write         bool     `short:"w" help:"Write a markdown note for the picked result"`
	Output        string   `short:"o" help:"Subdirectory under markdown output directory" default:"films"`
}

// CacheCmd groups cache management subcommands
type CacheCmd struct {
	Clear cache.ClearCmd `cmd:"" help:"Clear cached API responses"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("kinoteka"),
		kong.Description("Enrich a media library with metadata from the Kinopoisk database."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)

	// Library database defaults
	viper.SetDefault("library.enabled", true)
	viper.SetDefault("library.dbfile", "./kinoteka.db")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("kinopoisk.cache_ttl", "720h") // 30 days

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("kinopoisk.api_token", "KINOPOISK_API_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	config.SetUpdatePosters(cli.UpdatePosters)

	viper.Set("library.enabled", cli.Library)
	viper.Set("library.dbfile", cli.LibraryDB)

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("kinopoisk.cache_ttl", cli.CacheTTL)
}

// Run methods for each command

func (e *EnrichCmd) Run() error {
	return enrich.EnrichLibrary(context.Background(), enrich.Options{
		InputDir:        e.InputDir,
		Recursive:       e.Recursive,
		OutputDir:       e.Output,
		JSON:            e.JSON,
		JSONOutput:      e.JSONOutput,
		Overwrite:       config.OverwriteFiles,
		DownloadPosters: !e.NoPosters,
		UpdatePosters:   config.UpdatePosters,
		DryRun:          e.DryRun,
	})
}

func (f *FilmCmd) Run() error {
	client := kinopoisk.NewClient()
	defer client.Close()

	return film.Fetch(context.Background(), client, f.ID, film.Options{
		OutputDir:      f.Output,
		Write:          f.Write,
		Overwrite:      config.OverwriteFiles,
		DownloadPoster: f.Poster,
		UpdatePoster:   config.UpdatePosters,
	})
}

func (s *SearchCmd) Run() error {
	client := kinopoisk.NewClient()
	defer client.Close()

	ctx := context.Background()
	keyword := strings.Join(s.Keyword, " ")

	id, err := search.Run(ctx, client, keyword, search.Options{
		Interactive: !s.NoInteractive,
		Limit:       s.Limit,
	})
	if kerrors.IsStopProcessingError(err) {
		slog.Info("Selection stopped")
		return nil
	}
	if err != nil || id == 0 {
		return err
	}

	return film.Fetch(ctx, client, id, film.Options{
		OutputDir:      s.Output,
		Write:          s.Write,
		Overwrite:      config.OverwriteFiles,
		DownloadPoster: s.Write,
		UpdatePoster:   config.UpdatePosters,
	})
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}

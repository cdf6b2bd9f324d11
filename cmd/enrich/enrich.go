// Package enrich implements the library enrichment command: scan a media
// library, resolve Kinopoisk IDs from file and folder names, fetch
// metadata and write markdown notes, JSON exports and the library
// database.
package enrich

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/kinoteka/kinoteka/internal/cache"
	"github.com/kinoteka/kinoteka/internal/datastore"
	"github.com/kinoteka/kinoteka/internal/enrichment"
	"github.com/kinoteka/kinoteka/internal/fileutil"
	"github.com/kinoteka/kinoteka/internal/kinopoisk"
	"github.com/kinoteka/kinoteka/internal/mediaids"
	"github.com/kinoteka/kinoteka/internal/posters"
)

// mediaExtensions are the file types scanned for embedded Kinopoisk IDs.
var mediaExtensions = []string{".mkv", ".mp4", ".avi", ".m4v", ".mov"}

// Options controls a library enrichment run.
type Options struct {
	// InputDir is the library directory to scan
	InputDir string
	// Recursive scans subdirectories as well
	Recursive bool
	// OutputDir is the subdirectory under the markdown output directory
	OutputDir string
	// JSON also writes all records to a JSON export
	JSON bool
	// JSONOutput overrides the JSON export path
	JSONOutput string
	// Overwrite replaces existing notes
	Overwrite bool
	// DownloadPosters fetches and stores poster images
	DownloadPosters bool
	// UpdatePosters re-downloads posters that already exist on disk
	UpdatePosters bool
	// DryRun only reports what would be enriched
	DryRun bool
}

// EnrichLibrary runs the full enrichment flow against the configured
// Kinopoisk gateway.
func EnrichLibrary(ctx context.Context, opts Options) error {
	client := newClient()
	defer client.Close()

	return enrichLibrary(ctx, client, opts)
}

// newClient builds the gateway with a persistent response cache. A cache
// that fails to open degrades to the in-memory default.
func newClient() *kinopoisk.Client {
	dbFile := viper.GetString("cache.dbfile")
	if dbFile == "" {
		return kinopoisk.NewClient()
	}

	cacheDB, err := cache.NewDB(dbFile)
	if err != nil {
		slog.Warn("Failed to open cache database, using in-memory cache", "dbfile", dbFile, "error", err)
		return kinopoisk.NewClient()
	}

	return kinopoisk.NewClient(kinopoisk.WithCache(cacheDB))
}

func enrichLibrary(ctx context.Context, client *kinopoisk.Client, opts Options) error {
	ids, err := ScanLibrary(opts.InputDir, opts.Recursive)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		slog.Info("No Kinopoisk IDs found in library", "dir", opts.InputDir)
		return nil
	}

	slog.Info("Found library entries", "count", len(ids))

	markdownDir := filepath.Join(viper.GetString("MarkdownOutputDir"), opts.OutputDir)

	if !opts.Overwrite {
		ids = withoutNoted(ids, markdownDir)
		if len(ids) == 0 {
			slog.Info("All library entries already have notes", "dir", markdownDir)
			return nil
		}
	}

	if opts.DryRun {
		for _, id := range ids {
			fmt.Printf("would enrich kinopoisk:%d\n", id)
		}
		return nil
	}

	enricher := enrichment.NewEnricher(client)
	downloader := posters.NewDownloader()

	var records []*enrichment.Record
	for _, id := range ids {
		record, err := enricher.Enrich(ctx, id)
		if err != nil {
			return err
		}
		if record == nil {
			slog.Warn("No metadata found, skipping", "kinopoisk_id", id)
			continue
		}

		if err := writeNote(ctx, record, markdownDir, downloader, opts); err != nil {
			slog.Error("Failed to write note", "title", record.Title, "error", err)
			continue
		}

		records = append(records, record)
	}

	slog.Info("Enrichment complete", "enriched", len(records), "scanned", len(ids))

	if opts.JSON {
		jsonPath := opts.JSONOutput
		if jsonPath == "" {
			jsonPath = filepath.Join(viper.GetString("JSONOutputDir"), "kinoteka.json")
		}
		if _, err := fileutil.WriteJSONFile(records, jsonPath, opts.Overwrite); err != nil {
			return err
		}
	}

	return saveToLibrary(records)
}

// writeNote downloads the poster (when requested) and writes the markdown
// note for a record.
func writeNote(ctx context.Context, record *enrichment.Record, markdownDir string, downloader *posters.Downloader, opts Options) error {
	posterPath := ""
	if opts.DownloadPosters && record.PosterURL != "" {
		result, err := downloader.Download(ctx, posters.Options{
			URL:       record.PosterURL,
			OutputDir: markdownDir,
			Filename:  posters.BuildFilename(record.Title),
			Update:    opts.UpdatePosters,
		})
		if err != nil {
			slog.Warn("Poster download failed", "title", record.Title, "error", err)
		} else if result != nil {
			posterPath = result.RelativePath
		}
	}

	notePath := fileutil.GetMarkdownFilePath(record.NoteFilename(), markdownDir)
	written, err := fileutil.WriteFileWithOverwrite(notePath, []byte(record.Markdown(posterPath)), 0644, opts.Overwrite)
	if err != nil {
		return err
	}
	if !written {
		slog.Debug("Note already exists, skipping", "path", notePath)
	}
	return nil
}

// saveToLibrary persists the records into the library database when it is
// enabled in the configuration.
func saveToLibrary(records []*enrichment.Record) error {
	if !viper.GetBool("library.enabled") || len(records) == 0 {
		return nil
	}

	store := datastore.NewSQLiteStore(viper.GetString("library.dbfile"))
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := datastore.SaveRecords(store, records); err != nil {
		return fmt.Errorf("failed to save library records: %w", err)
	}

	slog.Info("Library database updated", "records", len(records))
	return nil
}

// withoutNoted filters out IDs whose metadata is already written up, so a
// re-run only fetches entries the note directory does not cover yet.
func withoutNoted(ids []int, markdownDir string) []int {
	noted := existingNoteIDs(markdownDir)
	if len(noted) == 0 {
		return ids
	}

	var pending []int
	for _, id := range ids {
		if noted[id] {
			slog.Debug("Note already exists, skipping fetch", "kinopoisk_id", id)
			continue
		}
		pending = append(pending, id)
	}
	if skipped := len(ids) - len(pending); skipped > 0 {
		slog.Info("Skipping entries with existing notes", "skipped", skipped)
	}
	return pending
}

// existingNoteIDs reads the Kinopoisk IDs back out of the frontmatter of
// notes already present in the output directory.
func existingNoteIDs(markdownDir string) map[int]bool {
	entries, err := os.ReadDir(markdownDir)
	if err != nil {
		return nil
	}

	noted := make(map[int]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		found, err := mediaids.FromFile(filepath.Join(markdownDir, entry.Name()))
		if err != nil {
			slog.Debug("Failed to parse existing note", "name", entry.Name(), "error", err)
			continue
		}
		if found.KinopoiskID != 0 {
			noted[found.KinopoiskID] = true
		}
	}
	return noted
}

// ScanLibrary walks the library directory and returns the deduplicated
// Kinopoisk IDs resolved from media file and folder names, in discovery
// order.
func ScanLibrary(dir string, recursive bool) ([]int, error) {
	var ids []int
	seen := make(map[int]bool)

	add := func(path string) {
		resolved := mediaids.Resolve(path)
		if resolved.KinopoiskID == 0 {
			slog.Debug("No Kinopoisk ID in name", "path", path)
			return
		}
		if !seen[resolved.KinopoiskID] {
			seen[resolved.KinopoiskID] = true
			ids = append(ids, resolved.KinopoiskID)
		}
	}

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isMediaFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan library: %w", err)
		}
		return ids, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || isMediaFile(entry.Name()) {
			add(filepath.Join(dir, entry.Name()))
		}
	}
	return ids, nil
}

func isMediaFile(path string) bool {
	return slices.Contains(mediaExtensions, strings.ToLower(filepath.Ext(path)))
}

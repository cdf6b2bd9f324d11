// Package film implements the single-film fetch command.
package film

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kinoteka/kinoteka/internal/enrichment"
	"github.com/kinoteka/kinoteka/internal/fileutil"
	"github.com/kinoteka/kinoteka/internal/kinopoisk"
	"github.com/kinoteka/kinoteka/internal/posters"
)

// Options controls a single-film fetch.
type Options struct {
	// OutputDir is the subdirectory under the markdown output directory
	OutputDir string
	// Write emits a markdown note instead of printing to stdout
	Write bool
	// Overwrite replaces an existing note
	Overwrite bool
	// DownloadPoster fetches and stores the poster image
	DownloadPoster bool
	// UpdatePoster re-downloads the poster even if it already exists
	UpdatePoster bool
}

// Fetch retrieves one film by Kinopoisk ID and either prints a summary or
// writes a markdown note.
func Fetch(ctx context.Context, client *kinopoisk.Client, id int, opts Options) error {
	record, err := enrichment.NewEnricher(client).Enrich(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("no film found for kinopoisk:%d", id)
	}

	if !opts.Write {
		fmt.Print(Summary(record))
		return nil
	}

	markdownDir := filepath.Join(viper.GetString("MarkdownOutputDir"), opts.OutputDir)

	posterPath := ""
	if opts.DownloadPoster && record.PosterURL != "" {
		result, err := posters.NewDownloader().Download(ctx, posters.Options{
			URL:       record.PosterURL,
			OutputDir: markdownDir,
			Filename:  posters.BuildFilename(record.Title),
			Update:    opts.UpdatePoster,
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
		return fmt.Errorf("note already exists, use --overwrite: %s", notePath)
	}

	slog.Info("Note written", "path", notePath)
	return nil
}

// Summary renders a short human-readable description of a record.
func Summary(r *enrichment.Record) string {
	var b strings.Builder

	title := r.Title
	if r.OriginalTitle != "" && r.OriginalTitle != r.Title {
		title = fmt.Sprintf("%s / %s", r.Title, r.OriginalTitle)
	}
	fmt.Fprintf(&b, "%s (%d)\n", title, r.Year)
	fmt.Fprintf(&b, "  kinopoisk:%d", r.KinopoiskID)
	if r.IMDBID != "" {
		fmt.Fprintf(&b, "  imdb:%s", r.IMDBID)
	}
	b.WriteString("\n")

	if r.RatingKP > 0 {
		fmt.Fprintf(&b, "  rating: %.1f", r.RatingKP)
		if r.RatingIMDB > 0 {
			fmt.Fprintf(&b, " (imdb %.1f)", r.RatingIMDB)
		}
		b.WriteString("\n")
	}
	if len(r.Genres) > 0 {
		fmt.Fprintf(&b, "  genres: %s\n", strings.Join(r.Genres, ", "))
	}
	if len(r.Directors) > 0 {
		fmt.Fprintf(&b, "  directed by: %s\n", strings.Join(r.Directors, ", "))
	}
	if r.Series {
		fmt.Fprintf(&b, "  %d seasons, %d episodes\n", r.Seasons, r.Episodes)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}

	return b.String()
}

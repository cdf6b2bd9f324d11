// Package posters downloads and stores poster images for library notes.
//
// Poster CDN URLs come straight from the metadata records; fetching them
// goes through a plain HTTP client rather than the API gateway, so the
// image bytes are never cached or rate limited.
package posters

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/kinoteka/kinoteka/internal/fileutil"
)

const defaultMaxWidth = 500

// Downloader fetches poster images over HTTP.
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader creates a poster downloader with a sane timeout.
func NewDownloader() *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient overrides the HTTP client, for tests.
func (d *Downloader) WithHTTPClient(c *http.Client) *Downloader {
	if c != nil {
		d.httpClient = c
	}
	return d
}

// Options holds the parameters for a poster download.
type Options struct {
	// URL is the source URL of the poster image
	URL string
	// OutputDir is the directory whose attachments/ subdirectory receives the file
	OutputDir string
	// Filename is the name of the poster file (e.g., "Title - poster.jpg")
	Filename string
	// MaxWidth bounds the stored image width; zero means the default
	MaxWidth int
	// Update forces re-downloading even if the poster exists
	Update bool
}

// Result holds the outcome of a poster download.
type Result struct {
	// Downloaded indicates if a new file was written
	Downloaded bool
	// LocalPath is the full path to the poster file
	LocalPath string
	// RelativePath is the path relative to the note (e.g., "attachments/Title - poster.jpg")
	RelativePath string
}

// Download fetches a poster, resizes it to the width bound and saves it as
// JPEG under OutputDir/attachments. An existing file is kept unless Update
// is set. An empty URL is a no-op returning (nil, nil).
func (d *Downloader) Download(ctx context.Context, opts Options) (*Result, error) {
	if opts.URL == "" {
		return nil, nil
	}

	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}

	attachmentsDir := filepath.Join(opts.OutputDir, "attachments")
	localPath := filepath.Join(attachmentsDir, opts.Filename)

	result := &Result{
		LocalPath:    localPath,
		RelativePath: filepath.Join("attachments", opts.Filename),
	}

	if fileutil.FileExists(localPath) && !opts.Update {
		slog.Debug("Poster already exists, skipping download", "path", localPath)
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download poster: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading poster from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode poster: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(attachmentsDir, 0o755); err != nil {
		return nil, err
	}

	if err := imaging.Save(img, localPath, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to save poster: %w", err)
	}

	slog.Info("Downloaded poster", "path", localPath)
	result.Downloaded = true

	return result, nil
}

// BuildFilename creates a standard poster filename from a title.
// Returns: "Title - poster.jpg"
func BuildFilename(title string) string {
	return fileutil.SanitizeFilename(title) + " - poster.jpg"
}

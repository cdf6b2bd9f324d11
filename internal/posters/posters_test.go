package posters

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/kinoteka/internal/testutil"
)

// testImageServer serves a generated PNG of the given size and counts hits.
func testImageServer(t *testing.T, width, height int) (*httptest.Server, *int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(server.Close)

	return server, &hits
}

func TestDownloadResizesWideImages(t *testing.T) {
	env := testutil.NewTestEnv(t)
	server, _ := testImageServer(t, 800, 1200)

	d := NewDownloader().WithHTTPClient(server.Client())
	result, err := d.Download(context.Background(), Options{
		URL:       server.URL + "/poster.png",
		OutputDir: env.RootDir(),
		Filename:  "The Matrix - poster.jpg",
		MaxWidth:  500,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Downloaded)
	assert.Equal(t, "attachments/The Matrix - poster.jpg", result.RelativePath)
	env.RequireFileExists("attachments/The Matrix - poster.jpg")

	saved, err := imaging.Open(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, 500, saved.Bounds().Dx())
}

func TestDownloadKeepsSmallImages(t *testing.T) {
	env := testutil.NewTestEnv(t)
	server, _ := testImageServer(t, 300, 450)

	d := NewDownloader().WithHTTPClient(server.Client())
	result, err := d.Download(context.Background(), Options{
		URL:       server.URL + "/poster.png",
		OutputDir: env.RootDir(),
		Filename:  "small - poster.jpg",
	})
	require.NoError(t, err)

	saved, err := imaging.Open(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, 300, saved.Bounds().Dx(), "images under the width bound keep their size")
}

func TestDownloadSkipsExistingPoster(t *testing.T) {
	env := testutil.NewTestEnv(t)
	server, hits := testImageServer(t, 100, 150)

	d := NewDownloader().WithHTTPClient(server.Client())
	opts := Options{
		URL:       server.URL + "/poster.png",
		OutputDir: env.RootDir(),
		Filename:  "existing - poster.jpg",
	}

	_, err := d.Download(context.Background(), opts)
	require.NoError(t, err)

	result, err := d.Download(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Downloaded)
	assert.Equal(t, 1, *hits, "existing poster must not be re-downloaded")

	opts.Update = true
	result, err = d.Download(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Downloaded)
	assert.Equal(t, 2, *hits)
}

func TestDownloadEmptyURLIsNoop(t *testing.T) {
	result, err := NewDownloader().Download(context.Background(), Options{})
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestDownloadUpstreamError(t *testing.T) {
	env := testutil.NewTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	d := NewDownloader().WithHTTPClient(server.Client())
	_, err := d.Download(context.Background(), Options{
		URL:       server.URL + "/missing.png",
		OutputDir: env.RootDir(),
		Filename:  "missing - poster.jpg",
	})
	assert.Error(t, err)
	env.RequireFileNotExists("attachments/missing - poster.jpg")
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "Alien - Covenant - poster.jpg", BuildFilename("Alien: Covenant"))
}

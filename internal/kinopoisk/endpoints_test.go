package kinopoisk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler serves canned JSON and records every request it sees.
type recordingHandler struct {
	mu       sync.Mutex
	requests []*http.Request
	status   int
	body     string
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.requests = append(h.requests, r.Clone(context.Background()))
	h.mu.Unlock()

	status := h.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(h.body))
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.requests)
}

func (h *recordingHandler) last() *http.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.requests) == 0 {
		return nil
	}
	return h.requests[len(h.requests)-1]
}

// newTestClient wires a client against a fake upstream with a fresh viper
// configuration. Rate limiting is left enabled at a rate high enough not to
// slow tests down.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("kinopoisk.api_token", "test-token")
	viper.Set("kinopoisk.cache_ttl", "1m")
	viper.Set("kinopoisk.max_rps", 1000)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL), WithHTTPClient(server.Client())}, opts...)
	client := NewClient(opts...)
	t.Cleanup(client.Close)

	return client, server
}

func TestFilm(t *testing.T) {
	handler := &recordingHandler{body: `{
		"kinopoiskId": 301,
		"imdbId": "tt0133093",
		"nameRu": "Матрица",
		"nameOriginal": "The Matrix",
		"ratingKinopoisk": "8.5",
		"year": "1999",
		"filmLength": 136,
		"type": "FILM",
		"countries": [{"country": "США"}],
		"genres": [{"genre": "фантастика"}, {"genre": "боевик"}]
	}`}
	client, _ := newTestClient(t, handler)

	film, err := client.Film(context.Background(), 301)
	require.NoError(t, err)
	require.NotNil(t, film)

	req := handler.last()
	assert.Equal(t, "/v2.2/films/301", req.URL.Path)
	assert.Equal(t, "test-token", req.Header.Get("X-API-KEY"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))

	assert.Equal(t, 301, film.KinopoiskID.Value())
	assert.Equal(t, "tt0133093", film.IMDBID)
	assert.Equal(t, "Матрица", film.DisplayTitle())
	assert.Equal(t, 8.5, film.RatingKinopoisk.Value())
	assert.Equal(t, 1999, film.Year.Value())
	assert.Equal(t, TypeFilm, film.Type)
	assert.False(t, film.Type.IsSeries())
	assert.Equal(t, []string{"фантастика", "боевик"}, film.GenreNames())
	assert.Equal(t, []string{"США"}, film.CountryNames())
}

func TestSearchByKeyword(t *testing.T) {
	handler := &recordingHandler{body: `{
		"keyword": "matrix",
		"pagesCount": 1,
		"searchFilmsCountResult": 2,
		"films": [
			{"filmId": 301, "nameRu": "Матрица", "type": "FILM", "year": "1999", "rating": "8.5"},
			{"filmId": 302, "nameEn": "The Matrix Reloaded", "type": "FILM", "year": "2003", "rating": "7.1"}
		]
	}`}
	client, _ := newTestClient(t, handler)

	response, err := client.SearchByKeyword(context.Background(), "matrix")
	require.NoError(t, err)
	require.NotNil(t, response)

	req := handler.last()
	assert.Equal(t, "/v2.1/films/search-by-keyword", req.URL.Path)
	assert.Equal(t, "matrix", req.URL.Query().Get("keyword"))

	require.Len(t, response.Films, 2)
	assert.Equal(t, 2, response.Total.Value())
	assert.Equal(t, "Матрица", response.Films[0].DisplayTitle())
	assert.Equal(t, "The Matrix Reloaded", response.Films[1].DisplayTitle())
	assert.Equal(t, 1999, response.Films[0].Year.Value())
}

func TestStaff(t *testing.T) {
	handler := &recordingHandler{body: `[
		{"staffId": 7640, "nameRu": "Лана Вачовски", "professionKey": "DIRECTOR"},
		{"staffId": 9838, "nameEn": "Keanu Reeves", "description": "Neo", "professionKey": "ACTOR"}
	]`}
	client, _ := newTestClient(t, handler)

	staff, err := client.Staff(context.Background(), 301)
	require.NoError(t, err)
	require.Len(t, staff, 2)

	req := handler.last()
	assert.Equal(t, "/v1/staff", req.URL.Path)
	assert.Equal(t, "301", req.URL.Query().Get("filmId"))

	assert.Equal(t, "Лана Вачовски", staff[0].DisplayName())
	assert.Equal(t, ProfessionDirector, staff[0].ProfessionKey)
	assert.Equal(t, "Keanu Reeves", staff[1].DisplayName())
	assert.Equal(t, "Neo", staff[1].Description)
}

func TestPerson(t *testing.T) {
	handler := &recordingHandler{body: `{
		"personId": 9838,
		"nameRu": "Киану Ривз",
		"nameEn": "Keanu Reeves",
		"birthday": "1964-09-02",
		"profession": "Актер, Продюсер",
		"films": [{"filmId": 301, "professionKey": "ACTOR"}]
	}`}
	client, _ := newTestClient(t, handler)

	person, err := client.Person(context.Background(), 9838)
	require.NoError(t, err)
	require.NotNil(t, person)

	assert.Equal(t, "/v1/staff/9838", handler.last().URL.Path)
	assert.Equal(t, "Киану Ривз", person.DisplayName())
	assert.Equal(t, []string{"Актер", "Продюсер"}, person.Professions())
	require.Len(t, person.Films, 1)
}

func TestSeasons(t *testing.T) {
	handler := &recordingHandler{body: `{
		"total": 2,
		"items": [
			{"number": 1, "episodes": [
				{"seasonNumber": 1, "episodeNumber": 1, "nameEn": "Pilot", "releaseDate": "2008-01-20"},
				{"seasonNumber": 1, "episodeNumber": 2, "nameEn": "Cat's in the Bag..."}
			]},
			{"number": 2, "episodes": [
				{"seasonNumber": 2, "episodeNumber": 1, "nameEn": "Seven Thirty-Seven"}
			]}
		]
	}`}
	client, _ := newTestClient(t, handler)

	seasons, err := client.Seasons(context.Background(), 404900)
	require.NoError(t, err)
	require.NotNil(t, seasons)

	assert.Equal(t, "/v2.2/films/404900/seasons", handler.last().URL.Path)
	assert.Equal(t, 2, seasons.Total.Value())
	assert.Equal(t, 3, seasons.EpisodeCount())
	assert.Equal(t, "Pilot", seasons.Items[0].Episodes[0].NameEn)
}

func TestImages(t *testing.T) {
	handler := &recordingHandler{body: `{
		"total": 1,
		"totalPages": 1,
		"items": [{"imageUrl": "https://example.test/still.jpg", "previewUrl": "https://example.test/still_s.jpg"}]
	}`}
	client, _ := newTestClient(t, handler)

	images, err := client.Images(context.Background(), 301, ImageStill)
	require.NoError(t, err)
	require.NotNil(t, images)

	req := handler.last()
	assert.Equal(t, "/v2.2/films/301/images", req.URL.Path)
	assert.Equal(t, "STILL", req.URL.Query().Get("type"))
	require.Len(t, images.Items, 1)
	assert.Equal(t, "https://example.test/still.jpg", images.Items[0].ImageURL)
}

func TestVideos(t *testing.T) {
	handler := &recordingHandler{body: `{
		"total": 1,
		"items": [{"url": "https://youtube.com/watch?v=m8e-FF8MsqU", "name": "Trailer", "site": "YOUTUBE"}]
	}`}
	client, _ := newTestClient(t, handler)

	videos, err := client.Videos(context.Background(), 301)
	require.NoError(t, err)
	require.NotNil(t, videos)

	assert.Equal(t, "/v2.2/films/301/videos", handler.last().URL.Path)
	require.Len(t, videos.Items, 1)
	assert.Equal(t, "YOUTUBE", videos.Items[0].Site)
}

func TestDistinctOperationsUseDistinctCacheKeys(t *testing.T) {
	handler := &recordingHandler{body: `{}`}
	client, _ := newTestClient(t, handler)

	ctx := context.Background()
	_, err := client.Film(ctx, 301)
	require.NoError(t, err)
	_, err = client.Videos(ctx, 301)
	require.NoError(t, err)
	_, err = client.Images(ctx, 301, ImageStill)
	require.NoError(t, err)
	_, err = client.Images(ctx, 301, ImagePoster)
	require.NoError(t, err)

	assert.Equal(t, 4, handler.count(), "each distinct endpoint key must fetch once")
}

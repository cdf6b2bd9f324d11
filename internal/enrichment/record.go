// Package enrichment maps Kinopoisk API responses to flat library records.
package enrichment

import (
	"github.com/kinoteka/kinoteka/internal/kinopoisk"
)

// maxActors caps the cast list stored per record; the upstream staff
// listing can run into the hundreds.
const maxActors = 15

// Record is the flattened, storage-ready view of a film or series.
type Record struct {
	KinopoiskID   int      `json:"kinopoisk_id"`
	IMDBID        string   `json:"imdb_id,omitempty"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Year          int      `json:"year,omitempty"`
	Series        bool     `json:"series"`
	Genres        []string `json:"genres,omitempty"`
	Countries     []string `json:"countries,omitempty"`
	RatingKP      float64  `json:"rating_kinopoisk,omitempty"`
	RatingIMDB    float64  `json:"rating_imdb,omitempty"`
	LengthMinutes int      `json:"length_minutes,omitempty"`
	Description   string   `json:"description,omitempty"`
	PosterURL     string   `json:"poster_url,omitempty"`
	WebURL        string   `json:"web_url,omitempty"`

	Directors []string `json:"directors,omitempty"`
	Writers   []string `json:"writers,omitempty"`
	Actors    []string `json:"actors,omitempty"`

	Seasons  int `json:"seasons,omitempty"`
	Episodes int `json:"episodes,omitempty"`
}

// NewRecord flattens a film response into a Record.
func NewRecord(film *kinopoisk.Film) *Record {
	if film == nil {
		return nil
	}

	description := film.Description
	if description == "" {
		description = film.ShortDesc
	}

	return &Record{
		KinopoiskID:   film.KinopoiskID.Value(),
		IMDBID:        film.IMDBID,
		Title:         film.DisplayTitle(),
		OriginalTitle: film.NameOriginal,
		Year:          film.Year.Value(),
		Series:        film.Type.IsSeries(),
		Genres:        film.GenreNames(),
		Countries:     film.CountryNames(),
		RatingKP:      film.RatingKinopoisk.Value(),
		RatingIMDB:    film.RatingIMDB.Value(),
		LengthMinutes: film.FilmLength.Value(),
		Description:   description,
		PosterURL:     film.PosterURL,
		WebURL:        film.WebURL,
	}
}

// ApplyStaff classifies the staff listing into directors, writers and
// actors. Producers, composers and other roles are not stored. The cast
// list is capped at maxActors, in upstream billing order.
func (r *Record) ApplyStaff(staff []kinopoisk.Staff) {
	for _, member := range staff {
		name := member.DisplayName()
		if name == "" {
			continue
		}

		switch member.ProfessionKey {
		case kinopoisk.ProfessionDirector:
			r.Directors = append(r.Directors, name)
		case kinopoisk.ProfessionWriter:
			r.Writers = append(r.Writers, name)
		case kinopoisk.ProfessionActor:
			if len(r.Actors) < maxActors {
				r.Actors = append(r.Actors, name)
			}
		}
	}
}

// ApplySeasons records the season and episode counts from a seasons
// listing.
func (r *Record) ApplySeasons(seasons *kinopoisk.SeasonsResponse) {
	if seasons == nil {
		return
	}
	r.Seasons = len(seasons.Items)
	r.Episodes = seasons.EpisodeCount()
}

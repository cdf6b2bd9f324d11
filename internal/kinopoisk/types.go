package kinopoisk

import "strings"

// Response models mirror the upstream JSON shapes. Every field is optional;
// the upstream omits fields freely, and unknown fields are ignored.

// FilmType distinguishes movies from the various series formats.
type FilmType string

// Film types as reported by the upstream API.
const (
	TypeFilm       FilmType = "FILM"
	TypeTVSeries   FilmType = "TV_SERIES"
	TypeMiniSeries FilmType = "MINI_SERIES"
	TypeTVShow     FilmType = "TV_SHOW"
	TypeVideo      FilmType = "VIDEO"
)

// IsSeries reports whether the type describes episodic content.
func (t FilmType) IsSeries() bool {
	switch t {
	case TypeTVSeries, TypeMiniSeries, TypeTVShow:
		return true
	}
	return false
}

// Country is a production country wrapper object.
type Country struct {
	Country string `json:"country"`
}

// Genre is a genre wrapper object.
type Genre struct {
	Genre string `json:"genre"`
}

// Film is the full film record returned by /v2.2/films/{id}.
type Film struct {
	KinopoiskID     Int       `json:"kinopoiskId"`
	IMDBID          string    `json:"imdbId"`
	NameRu          string    `json:"nameRu"`
	NameEn          string    `json:"nameEn"`
	NameOriginal    string    `json:"nameOriginal"`
	PosterURL       string    `json:"posterUrl"`
	PosterURLSmall  string    `json:"posterUrlPreview"`
	CoverURL        string    `json:"coverUrl"`
	LogoURL         string    `json:"logoUrl"`
	RatingKinopoisk Float     `json:"ratingKinopoisk"`
	RatingIMDB      Float     `json:"ratingImdb"`
	Year            Int       `json:"year"`
	FilmLength      Int       `json:"filmLength"`
	Slogan          string    `json:"slogan"`
	Description     string    `json:"description"`
	ShortDesc       string    `json:"shortDescription"`
	Type            FilmType  `json:"type"`
	RatingMPAA      string    `json:"ratingMpaa"`
	RatingAgeLimits string    `json:"ratingAgeLimits"`
	Countries       []Country `json:"countries"`
	Genres          []Genre   `json:"genres"`
	StartYear       Int       `json:"startYear"`
	EndYear         Int       `json:"endYear"`
	Serial          bool      `json:"serial"`
	Completed       bool      `json:"completed"`
	WebURL          string    `json:"webUrl"`
}

// DisplayTitle returns the best available title for the film.
func (f *Film) DisplayTitle() string {
	for _, name := range []string{f.NameRu, f.NameOriginal, f.NameEn} {
		if name != "" {
			return name
		}
	}
	return ""
}

// GenreNames flattens the genre wrappers into plain strings.
func (f *Film) GenreNames() []string {
	names := make([]string, 0, len(f.Genres))
	for _, g := range f.Genres {
		if g.Genre != "" {
			names = append(names, g.Genre)
		}
	}
	return names
}

// CountryNames flattens the country wrappers into plain strings.
func (f *Film) CountryNames() []string {
	names := make([]string, 0, len(f.Countries))
	for _, c := range f.Countries {
		if c.Country != "" {
			names = append(names, c.Country)
		}
	}
	return names
}

// SearchFilm is a single result from /v2.1/films/search-by-keyword.
// The v2.1 API encodes year, rating and filmLength as strings.
type SearchFilm struct {
	FilmID         Int       `json:"filmId"`
	NameRu         string    `json:"nameRu"`
	NameEn         string    `json:"nameEn"`
	Type           FilmType  `json:"type"`
	Year           Int       `json:"year"`
	Description    string    `json:"description"`
	FilmLength     string    `json:"filmLength"`
	Countries      []Country `json:"countries"`
	Genres         []Genre   `json:"genres"`
	Rating         Float     `json:"rating"`
	RatingVotes    Int       `json:"ratingVoteCount"`
	PosterURL      string    `json:"posterUrl"`
	PosterURLSmall string    `json:"posterUrlPreview"`
}

// DisplayTitle returns the best available title for the search result.
func (f SearchFilm) DisplayTitle() string {
	if f.NameRu != "" {
		return f.NameRu
	}
	return f.NameEn
}

// SearchResponse is the paged result of a keyword search.
type SearchResponse struct {
	Keyword    string       `json:"keyword"`
	PagesCount Int          `json:"pagesCount"`
	Total      Int          `json:"searchFilmsCountResult"`
	Films      []SearchFilm `json:"films"`
}

// Profession keys used to classify staff members.
const (
	ProfessionDirector = "DIRECTOR"
	ProfessionActor    = "ACTOR"
	ProfessionWriter   = "WRITER"
	ProfessionProducer = "PRODUCER"
	ProfessionComposer = "COMPOSER"
)

// Staff is one entry of the film staff listing from /v1/staff?filmId=.
type Staff struct {
	StaffID        Int    `json:"staffId"`
	NameRu         string `json:"nameRu"`
	NameEn         string `json:"nameEn"`
	Description    string `json:"description"`
	PosterURL      string `json:"posterUrl"`
	ProfessionText string `json:"professionText"`
	ProfessionKey  string `json:"professionKey"`
}

// DisplayName returns the best available name for the staff member.
func (s Staff) DisplayName() string {
	if s.NameRu != "" {
		return s.NameRu
	}
	return s.NameEn
}

// PersonFilm is a film credit on a person's profile.
type PersonFilm struct {
	FilmID         Int    `json:"filmId"`
	NameRu         string `json:"nameRu"`
	NameEn         string `json:"nameEn"`
	Rating         Float  `json:"rating"`
	General        bool   `json:"general"`
	Description    string `json:"description"`
	ProfessionKey  string `json:"professionKey"`
	ProfessionText string `json:"professionText"`
}

// Person is the full profile returned by /v1/staff/{id}.
type Person struct {
	PersonID   Int          `json:"personId"`
	WebURL     string       `json:"webUrl"`
	NameRu     string       `json:"nameRu"`
	NameEn     string       `json:"nameEn"`
	Sex        string       `json:"sex"`
	PosterURL  string       `json:"posterUrl"`
	Growth     Int          `json:"growth"`
	Birthday   string       `json:"birthday"`
	Death      string       `json:"death"`
	Age        Int          `json:"age"`
	Birthplace string       `json:"birthplace"`
	Deathplace string       `json:"deathplace"`
	Profession string       `json:"profession"`
	Facts      []string     `json:"facts"`
	Films      []PersonFilm `json:"films"`
}

// DisplayName returns the best available name for the person.
func (p *Person) DisplayName() string {
	if p.NameRu != "" {
		return p.NameRu
	}
	return p.NameEn
}

// Professions splits the comma-separated profession listing into parts.
func (p *Person) Professions() []string {
	if p.Profession == "" {
		return nil
	}
	parts := strings.Split(p.Profession, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Episode is one episode of a season.
type Episode struct {
	SeasonNumber  Int    `json:"seasonNumber"`
	EpisodeNumber Int    `json:"episodeNumber"`
	NameRu        string `json:"nameRu"`
	NameEn        string `json:"nameEn"`
	Synopsis      string `json:"synopsis"`
	ReleaseDate   string `json:"releaseDate"`
}

// Season is one season of a series with its episode listing.
type Season struct {
	Number   Int       `json:"number"`
	Episodes []Episode `json:"episodes"`
}

// SeasonsResponse is the season/episode listing from /v2.2/films/{id}/seasons.
type SeasonsResponse struct {
	Total Int      `json:"total"`
	Items []Season `json:"items"`
}

// EpisodeCount returns the number of episodes across all seasons.
func (r *SeasonsResponse) EpisodeCount() int {
	count := 0
	for _, season := range r.Items {
		count += len(season.Episodes)
	}
	return count
}

// ImageType tags the still image categories of /v2.2/films/{id}/images.
type ImageType string

// Image types accepted by the images endpoint.
const (
	ImageStill      ImageType = "STILL"
	ImageShooting   ImageType = "SHOOTING"
	ImagePoster     ImageType = "POSTER"
	ImageFanArt     ImageType = "FAN_ART"
	ImagePromo      ImageType = "PROMO"
	ImageConcept    ImageType = "CONCEPT"
	ImageWallpaper  ImageType = "WALLPAPER"
	ImageCover      ImageType = "COVER"
	ImageScreenshot ImageType = "SCREENSHOT"
)

// Image is a single still image reference.
type Image struct {
	ImageURL   string `json:"imageUrl"`
	PreviewURL string `json:"previewUrl"`
}

// ImagesResponse is the paged image listing for a film.
type ImagesResponse struct {
	Total      Int     `json:"total"`
	TotalPages Int     `json:"totalPages"`
	Items      []Image `json:"items"`
}

// Video is a single trailer/video reference.
type Video struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Site string `json:"site"`
}

// VideosResponse is the trailer/video listing for a film.
type VideosResponse struct {
	Total Int     `json:"total"`
	Items []Video `json:"items"`
}

package enrichment

import (
	"fmt"

	"github.com/kinoteka/kinoteka/internal/fileutil"
)

// Markdown renders the record as an Obsidian-style note with YAML
// frontmatter. posterPath, when non-empty, is the note-relative path of a
// downloaded poster; otherwise the upstream poster URL is embedded.
func (r *Record) Markdown(posterPath string) string {
	mediaType := "film"
	if r.Series {
		mediaType = "series"
	}

	mb := fileutil.NewMarkdownBuilder().
		AddTitle(r.Title).
		AddType(mediaType).
		AddYear(r.Year).
		AddField("original_title", r.OriginalTitle).
		AddField("kinopoisk_id", r.KinopoiskID).
		AddField("imdb_id", r.IMDBID).
		AddField("rating_kinopoisk", r.RatingKP).
		AddField("rating_imdb", r.RatingIMDB).
		AddDuration(r.LengthMinutes).
		AddStringArray("genres", r.Genres).
		AddStringArray("countries", r.Countries).
		AddStringArray("directors", r.Directors)

	if r.Series {
		mb.AddField("seasons", r.Seasons)
		mb.AddField("episodes", r.Episodes)
	}

	tags := []string{"kinoteka/" + mediaType}
	if r.Year > 0 {
		tags = append(tags, fileutil.GetDecadeTag(r.Year))
	}
	mb.AddTags(tags...)

	poster := posterPath
	if poster == "" {
		poster = r.PosterURL
	}
	mb.AddImage(poster)

	mb.AddParagraph(r.Description)

	if len(r.Actors) > 0 {
		cast := ""
		for _, actor := range r.Actors {
			cast += actor + "\n"
		}
		mb.AddCallout("info", "Cast", cast[:len(cast)-1])
	}

	if r.WebURL != "" {
		mb.AddExternalLink("Kinopoisk", r.WebURL)
	}

	return mb.Build()
}

// NoteFilename returns the sanitized note filename for the record,
// disambiguated by year: "Title (1999).md".
func (r *Record) NoteFilename() string {
	name := r.Title
	if name == "" {
		name = fmt.Sprintf("kinopoisk-%d", r.KinopoiskID)
	}
	if r.Year > 0 {
		name = fmt.Sprintf("%s (%d)", name, r.Year)
	}
	return fileutil.SanitizeFilename(name)
}

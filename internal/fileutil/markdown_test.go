package fileutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/kinoteka/internal/mediaids"
)

func TestMarkdownBuilder(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle("Матрица").
		AddType("film").
		AddYear(1999).
		AddField("rating_kinopoisk", 8.5).
		AddField("kinopoisk_id", 301).
		AddStringArray("genres", []string{"фантастика", "боевик"}).
		AddTags("kinoteka", GetDecadeTag(1999)).
		AddDuration(136).
		AddParagraph("Жизнь Томаса Андерсона разделена на две части.").
		AddImage("attachments/Матрица - poster.jpg").
		AddExternalLink("Kinopoisk", "https://www.kinopoisk.ru/film/301/").
		Build()

	assert.True(t, strings.HasPrefix(doc, "---\n"))
	assert.Contains(t, doc, "title: \"Матрица\"\n")
	assert.Contains(t, doc, "type: film\n")
	assert.Contains(t, doc, "year: 1999\n")
	assert.Contains(t, doc, "rating_kinopoisk: 8.5\n")
	assert.Contains(t, doc, "kinopoisk_id: 301\n")
	assert.Contains(t, doc, "genres:\n  - \"фантастика\"\n  - \"боевик\"\n")
	assert.Contains(t, doc, "tags:\n  - kinoteka\n  - year/1990s\n")
	assert.Contains(t, doc, "duration: 2h 16m\n")
	assert.Contains(t, doc, "![](attachments/Матрица - poster.jpg)")
	assert.Contains(t, doc, "[Kinopoisk](https://www.kinopoisk.ru/film/301/)")

	// Frontmatter is closed before content begins
	assert.Contains(t, doc, "---\n\nЖизнь")
}

func TestMarkdownBuilderEscapesQuotes(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle(`Кин-дза-дза! "реставрация"`).
		AddField("original_title", `Kin-dza-dza! "restored"`).
		AddStringArray("genres", []string{`комедия "советская"`}).
		Build()

	assert.Contains(t, doc, "title: \"Кин-дза-дза! \\\"реставрация\\\"\"\n")

	// The frontmatter must stay parseable YAML so IDs can be read back out.
	note, err := mediaids.ParseMarkdown([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, `Кин-дза-дза! "реставрация"`, note.GetString("title"))
	assert.Equal(t, `Kin-dza-dza! "restored"`, note.GetString("original_title"))
}

func TestMarkdownBuilderSkipsZeroValues(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddYear(0).
		AddField("rating", 0.0).
		AddField("imdb_id", "").
		AddStringArray("genres", nil).
		AddDuration(0).
		AddParagraph("").
		AddImage("").
		Build()

	assert.Equal(t, "---\n---\n\n", doc)
}

func TestAddCallout(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddCallout("info", "Cast", "Keanu Reeves\nCarrie-Anne Moss").
		Build()

	assert.Contains(t, doc, ">[!info]- Cast\n> Keanu Reeves\n> Carrie-Anne Moss\n")
}

func TestGetDecadeTag(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{year: 2024, want: "year/2020s"},
		{year: 1999, want: "year/1990s"},
		{year: 1950, want: "year/1950s"},
		{year: 1942, want: "year/pre-1950s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetDecadeTag(tt.year))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2h 16m", FormatDuration(136))
	assert.Equal(t, "0h 47m", FormatDuration(47))
}

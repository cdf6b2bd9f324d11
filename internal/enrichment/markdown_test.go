package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinoteka/kinoteka/internal/testutil"
)

func TestMarkdown(t *testing.T) {
	record := NewRecord(sampleFilm())
	record.Directors = []string{"Винс Гиллиган"}
	record.Actors = []string{"Bryan Cranston", "Aaron Paul"}
	record.Seasons = 5
	record.Episodes = 62

	doc := record.Markdown("attachments/Во все тяжкие - poster.jpg")

	assert.Contains(t, doc, "title: \"Во все тяжкие\"")
	assert.Contains(t, doc, "type: series")
	assert.Contains(t, doc, "original_title: \"Breaking Bad\"")
	assert.Contains(t, doc, "kinopoisk_id: 404900")
	assert.Contains(t, doc, "imdb_id: \"tt0903747\"")
	assert.Contains(t, doc, "seasons: 5")
	assert.Contains(t, doc, "episodes: 62")
	assert.Contains(t, doc, "directors:\n  - \"Винс Гиллиган\"")
	assert.Contains(t, doc, "tags:\n  - kinoteka/series\n  - year/2000s")
	assert.Contains(t, doc, "![](attachments/Во все тяжкие - poster.jpg)")
	assert.Contains(t, doc, ">[!info]- Cast\n> Bryan Cranston\n> Aaron Paul")
	assert.Contains(t, doc, "[Kinopoisk](https://www.kinopoisk.ru/film/404900/)")
}

func TestMarkdownGolden(t *testing.T) {
	record := NewRecord(sampleFilm())
	record.Directors = []string{"Винс Гиллиган"}
	record.Actors = []string{"Bryan Cranston", "Aaron Paul"}
	record.Seasons = 5
	record.Episodes = 62

	golden := testutil.NewGoldenHelper(t, "testdata")
	golden.AssertGoldenString("breaking_bad.md", record.Markdown("attachments/Во все тяжкие - poster.jpg"))
}

func TestMarkdownFallsBackToPosterURL(t *testing.T) {
	record := NewRecord(sampleFilm())

	doc := record.Markdown("")
	assert.Contains(t, doc, "![](https://example.test/poster.jpg)")
}

func TestNoteFilename(t *testing.T) {
	record := &Record{Title: "Alien: Covenant", Year: 2017}
	assert.Equal(t, "Alien - Covenant (2017)", record.NoteFilename())

	record = &Record{KinopoiskID: 301}
	assert.Equal(t, "kinopoisk-301", record.NoteFilename())
}

package datastore

import (
	"strings"

	"github.com/kinoteka/kinoteka/internal/enrichment"
)

// FilmsTable is the name of the library table.
const FilmsTable = "films"

// FilmsSchema defines the library table. kinopoisk_id is the natural
// primary key, so re-importing a record replaces the previous row.
const FilmsSchema = `
CREATE TABLE IF NOT EXISTS films (
	kinopoisk_id INTEGER PRIMARY KEY,
	imdb_id TEXT,
	title TEXT NOT NULL,
	original_title TEXT,
	year INTEGER,
	series INTEGER NOT NULL DEFAULT 0,
	genres TEXT,
	countries TEXT,
	rating_kinopoisk REAL,
	rating_imdb REAL,
	length_minutes INTEGER,
	description TEXT,
	poster_url TEXT,
	web_url TEXT,
	directors TEXT,
	writers TEXT,
	actors TEXT,
	seasons INTEGER,
	episodes INTEGER
);
`

// FilmRow flattens a record into a column map for BatchInsert. List
// columns are stored comma-separated for easy querying.
func FilmRow(r *enrichment.Record) map[string]any {
	series := 0
	if r.Series {
		series = 1
	}

	return map[string]any{
		"kinopoisk_id":     r.KinopoiskID,
		"imdb_id":          r.IMDBID,
		"title":            r.Title,
		"original_title":   r.OriginalTitle,
		"year":             r.Year,
		"series":           series,
		"genres":           strings.Join(r.Genres, ", "),
		"countries":        strings.Join(r.Countries, ", "),
		"rating_kinopoisk": r.RatingKP,
		"rating_imdb":      r.RatingIMDB,
		"length_minutes":   r.LengthMinutes,
		"description":      r.Description,
		"poster_url":       r.PosterURL,
		"web_url":          r.WebURL,
		"directors":        strings.Join(r.Directors, ", "),
		"writers":          strings.Join(r.Writers, ", "),
		"actors":           strings.Join(r.Actors, ", "),
		"seasons":          r.Seasons,
		"episodes":         r.Episodes,
	}
}

// SaveRecords writes the records into the films table, creating it first
// when needed.
func SaveRecords(store Store, records []*enrichment.Record) error {
	if len(records) == 0 {
		return nil
	}

	if err := store.CreateTable(FilmsSchema); err != nil {
		return err
	}

	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		rows = append(rows, FilmRow(record))
	}

	return store.BatchInsert(FilmsTable, rows)
}

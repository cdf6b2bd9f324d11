// Package mediaids extracts Kinopoisk identifiers from library files:
// filename tags, Kinopoisk URLs and existing note frontmatter.
package mediaids

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Filename patterns accepted for embedded Kinopoisk IDs, e.g.
// "The Matrix (1999) kp-301.mkv", "Матрица [kinopoisk301]" or a pasted
// kinopoisk.ru film URL.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bkp-(\d+)\b`),
	regexp.MustCompile(`(?i)\[kinopoisk(\d+)\]`),
	regexp.MustCompile(`(?i)kinopoisk\.ru/(?:film|series)/(\d+)`),
}

// MediaIDs collects external identifiers for a library entry.
type MediaIDs struct {
	KinopoiskID int
	IMDBID      string
}

// FromName extracts a Kinopoisk ID embedded in a file or folder name.
// Returns the zero value when no pattern matches.
func FromName(name string) MediaIDs {
	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(name); m != nil {
			if id, err := strconv.Atoi(m[1]); err == nil && id > 0 {
				return MediaIDs{KinopoiskID: id}
			}
		}
	}
	return MediaIDs{}
}

// FromFrontmatter extracts all supported IDs from a parsed frontmatter map.
func FromFrontmatter(fm map[string]any) MediaIDs {
	if fm == nil {
		return MediaIDs{}
	}

	note := ParsedNote{Frontmatter: fm}
	return MediaIDs{
		KinopoiskID: note.GetInt("kinopoisk_id"),
		IMDBID:      note.GetString("imdb_id"),
	}
}

// FromFile parses a markdown note and returns its external IDs.
func FromFile(path string) (MediaIDs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MediaIDs{}, err
	}

	note, err := ParseMarkdown(data)
	if err != nil {
		return MediaIDs{}, err
	}

	return FromFrontmatter(note.Frontmatter), nil
}

// Resolve finds the Kinopoisk ID for a library path: the file name is
// checked first, then each parent directory name up to the library root.
func Resolve(path string) MediaIDs {
	base := filepath.Base(path)
	if ids := FromName(base); ids.KinopoiskID != 0 {
		return ids
	}

	dir := filepath.Dir(path)
	for dir != "." && dir != string(filepath.Separator) {
		if ids := FromName(filepath.Base(dir)); ids.KinopoiskID != 0 {
			return ids
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return MediaIDs{}
}

// HasAny reports whether the struct contains at least one identifier.
func (ids MediaIDs) HasAny() bool {
	return ids.KinopoiskID != 0 || ids.IMDBID != ""
}

// Summary renders a short, human-friendly description of all found IDs.
func (ids MediaIDs) Summary() string {
	var parts []string
	if ids.KinopoiskID != 0 {
		parts = append(parts, fmt.Sprintf("kinopoisk:%d", ids.KinopoiskID))
	}
	if ids.IMDBID != "" {
		parts = append(parts, fmt.Sprintf("imdb:%s", ids.IMDBID))
	}

	if len(parts) == 0 {
		return "no IDs"
	}

	return strings.Join(parts, ", ")
}

// Package search implements the keyword search command.
package search

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/kinoteka/kinoteka/internal/errors"
	"github.com/kinoteka/kinoteka/internal/kinopoisk"
	"github.com/kinoteka/kinoteka/internal/tui"
)

// Options controls a keyword search.
type Options struct {
	// Interactive presents a picker instead of printing the listing
	Interactive bool
	// Limit caps the number of printed results; zero means all
	Limit int
}

// Run searches films by keyword. In interactive mode the user picks one
// result and its Kinopoisk ID is returned; otherwise the listing is
// printed and the ID is zero.
func Run(ctx context.Context, client *kinopoisk.Client, keyword string, opts Options) (int, error) {
	response, err := client.SearchByKeyword(ctx, keyword)
	if err != nil {
		return 0, err
	}
	if response == nil || len(response.Films) == 0 {
		fmt.Printf("No results for %q\n", keyword)
		return 0, nil
	}

	if opts.Interactive {
		result, err := tui.Select(keyword, response.Films)
		if err != nil {
			return 0, err
		}
		switch {
		case result.Action == tui.ActionStopped:
			return 0, kerrors.NewStopProcessingError("selection stopped by user")
		case result.Action != tui.ActionSelected || result.Selection == nil:
			return 0, nil
		}
		return result.Selection.FilmID.Value(), nil
	}

	fmt.Print(Listing(response, opts.Limit))
	return 0, nil
}

// Listing renders the search results as an aligned plain-text listing.
func Listing(response *kinopoisk.SearchResponse, limit int) string {
	films := response.Films
	if limit > 0 && len(films) > limit {
		films = films[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d results for %q\n\n", response.Total.Value(), response.Keyword)

	for _, film := range films {
		title := film.DisplayTitle()
		if film.NameEn != "" && film.NameEn != title {
			title = fmt.Sprintf("%s / %s", title, film.NameEn)
		}

		fmt.Fprintf(&b, "%8d  %s", film.FilmID.Value(), title)
		if year := film.Year.Value(); year > 0 {
			fmt.Fprintf(&b, " (%d)", year)
		}
		if rating := film.Rating.Value(); rating > 0 {
			fmt.Fprintf(&b, "  %.1f", rating)
		}
		if film.Type.IsSeries() {
			b.WriteString("  [series]")
		}
		b.WriteString("\n")
	}

	return b.String()
}

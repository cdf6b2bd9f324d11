package enrichment

import (
	"context"
	"log/slog"

	"github.com/kinoteka/kinoteka/internal/kinopoisk"
)

// Gateway is the slice of the Kinopoisk client the enricher needs.
type Gateway interface {
	Film(ctx context.Context, id int) (*kinopoisk.Film, error)
	Staff(ctx context.Context, filmID int) ([]kinopoisk.Staff, error)
	Seasons(ctx context.Context, seriesID int) (*kinopoisk.SeasonsResponse, error)
}

// Enricher fetches and flattens a complete record for a Kinopoisk ID.
type Enricher struct {
	gateway Gateway
}

// NewEnricher creates an Enricher backed by the given gateway.
func NewEnricher(gateway Gateway) *Enricher {
	return &Enricher{gateway: gateway}
}

// Enrich builds a full Record for the given Kinopoisk ID: the base film
// record, the classified staff listing and, for series, the season and
// episode counts. Missing staff or season data degrades to a partial
// record; a missing film returns (nil, nil). Only context cancellation is
// returned as an error.
func (e *Enricher) Enrich(ctx context.Context, id int) (*Record, error) {
	film, err := e.gateway.Film(ctx, id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		slog.Debug("No film found for ID", "kinopoisk_id", id)
		return nil, nil
	}

	record := NewRecord(film)

	staff, err := e.gateway.Staff(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff != nil {
		record.ApplyStaff(staff)
	}

	if record.Series {
		seasons, err := e.gateway.Seasons(ctx, id)
		if err != nil {
			return nil, err
		}
		record.ApplySeasons(seasons)
	}

	return record, nil
}

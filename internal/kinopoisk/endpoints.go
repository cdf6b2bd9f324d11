package kinopoisk

import (
	"context"
	"fmt"
	"net/url"
)

// Each operation builds a deterministic endpoint URL from its resource path
// and parameters. The URL doubles as the cache key: two calls with the same
// arguments hit the same cache entry regardless of the caller. The API token
// travels in a header, never in the URL, so keys are safe to log and store.

// Film fetches the full film record by Kinopoisk ID.
// Returns (nil, nil) when the film is absent.
func (c *Client) Film(ctx context.Context, id int) (*Film, error) {
	endpoint := fmt.Sprintf("%s/v2.2/films/%d", c.baseURL, id)

	var film Film
	found, err := c.getJSON(ctx, endpoint, &film)
	if err != nil || !found {
		return nil, err
	}
	return &film, nil
}

// SearchByKeyword searches films and series by a free-text keyword.
// Returns (nil, nil) when the search yields nothing.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	endpoint := fmt.Sprintf("%s/v2.1/films/search-by-keyword?%s", c.baseURL, params.Encode())

	var response SearchResponse
	found, err := c.getJSON(ctx, endpoint, &response)
	if err != nil || !found {
		return nil, err
	}
	return &response, nil
}

// Staff fetches the staff listing (directors, actors, writers, ...) for a
// film. Returns (nil, nil) when the film has no staff record upstream.
func (c *Client) Staff(ctx context.Context, filmID int) ([]Staff, error) {
	params := url.Values{}
	params.Set("filmId", fmt.Sprintf("%d", filmID))
	endpoint := fmt.Sprintf("%s/v1/staff?%s", c.baseURL, params.Encode())

	var staff []Staff
	found, err := c.getJSON(ctx, endpoint, &staff)
	if err != nil || !found {
		return nil, err
	}
	return staff, nil
}

// Person fetches a person's full profile by staff/person ID.
// Returns (nil, nil) when the person is absent.
func (c *Client) Person(ctx context.Context, personID int) (*Person, error) {
	endpoint := fmt.Sprintf("%s/v1/staff/%d", c.baseURL, personID)

	var person Person
	found, err := c.getJSON(ctx, endpoint, &person)
	if err != nil || !found {
		return nil, err
	}
	return &person, nil
}

// Seasons fetches the season/episode listing for a series.
// Returns (nil, nil) when the series has no season data.
func (c *Client) Seasons(ctx context.Context, seriesID int) (*SeasonsResponse, error) {
	endpoint := fmt.Sprintf("%s/v2.2/films/%d/seasons", c.baseURL, seriesID)

	var response SeasonsResponse
	found, err := c.getJSON(ctx, endpoint, &response)
	if err != nil || !found {
		return nil, err
	}
	return &response, nil
}

// Images fetches still images for a film filtered by image type.
// Returns (nil, nil) when no images of that type exist.
func (c *Client) Images(ctx context.Context, filmID int, imageType ImageType) (*ImagesResponse, error) {
	params := url.Values{}
	params.Set("type", string(imageType))
	endpoint := fmt.Sprintf("%s/v2.2/films/%d/images?%s", c.baseURL, filmID, params.Encode())

	var response ImagesResponse
	found, err := c.getJSON(ctx, endpoint, &response)
	if err != nil || !found {
		return nil, err
	}
	return &response, nil
}

// Videos fetches the trailer/video listing for a film.
// Returns (nil, nil) when the film has no videos.
func (c *Client) Videos(ctx context.Context, filmID int) (*VideosResponse, error) {
	endpoint := fmt.Sprintf("%s/v2.2/films/%d/videos", c.baseURL, filmID)

	var response VideosResponse
	found, err := c.getJSON(ctx, endpoint, &response)
	if err != nil || !found {
		return nil, err
	}
	return &response, nil
}

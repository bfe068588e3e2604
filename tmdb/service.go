package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// GetMovie fetches a movie by ID
func (c *Client) GetMovie(ctx context.Context, id int, opts ...EndpointOption) (*Movie, error) {
	return fetchOne[Movie](ctx, c, MovieDetails(id, opts...))
}

// GetTVShow fetches a TV show by ID
func (c *Client) GetTVShow(ctx context.Context, id int, opts ...EndpointOption) (*TVShow, error) {
	return fetchOne[TVShow](ctx, c, TVShowDetails(id, opts...))
}

// GetNowPlayingMovies lists the movies currently in theaters
func (c *Client) GetNowPlayingMovies(ctx context.Context, opts ...EndpointOption) ([]Movie, error) {
	return fetchList[Movie](ctx, c, NowPlayingMovies(opts...))
}

// GetPopularMovies lists popular movies
func (c *Client) GetPopularMovies(ctx context.Context, opts ...EndpointOption) ([]Movie, error) {
	return fetchList[Movie](ctx, c, PopularMovies(opts...))
}

// GetPopularTVShows lists popular TV shows
func (c *Client) GetPopularTVShows(ctx context.Context, opts ...EndpointOption) ([]TVShow, error) {
	return fetchList[TVShow](ctx, c, PopularTVShows(opts...))
}

// GetOnTheAirTVShows lists TV shows airing in the coming week
func (c *Client) GetOnTheAirTVShows(ctx context.Context, opts ...EndpointOption) ([]TVShow, error) {
	return fetchList[TVShow](ctx, c, OnTheAirTVShows(opts...))
}

// SearchMovies searches movies by title
func (c *Client) SearchMovies(ctx context.Context, query string, opts ...EndpointOption) ([]Movie, error) {
	return fetchList[Movie](ctx, c, Search(MediaModeMovie, query, opts...))
}

// SearchTVShows searches TV shows by name
func (c *Client) SearchTVShows(ctx context.Context, query string, opts ...EndpointOption) ([]TVShow, error) {
	return fetchList[TVShow](ctx, c, Search(MediaModeTV, query, opts...))
}

// SearchMulti searches movies and TV shows at once. People and other
// result types are skipped.
func (c *Client) SearchMulti(ctx context.Context, query string, opts ...EndpointOption) ([]Media, error) {
	e := Search(MediaModeAll, query, opts...)

	body, err := c.Do(ctx, e)
	if err != nil {
		return nil, err
	}

	items, err := Decode[json.RawMessage](body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", e, err)
	}

	results := make([]Media, 0, len(items))
	for _, item := range items {
		m, err := decodeMedia(item)
		if err != nil {
			c.logger.Debug().Err(err).Msg("Skipping search result")
			continue
		}
		results = append(results, m)
	}

	return results, nil
}

// FetchPage fetches a listing endpoint together with its pagination metadata
func FetchPage[T any](ctx context.Context, c *Client, e Endpoint) (*Page[T], error) {
	body, err := c.Do(ctx, e)
	if err != nil {
		return nil, err
	}

	page, err := DecodePage[T](body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", e, err)
	}
	return page, nil
}

func fetchOne[T any](ctx context.Context, c *Client, e Endpoint) (*T, error) {
	body, err := c.Do(ctx, e)
	if err != nil {
		return nil, err
	}

	v, err := DecodeOne[T](body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", e, err)
	}
	return &v, nil
}

func fetchList[T any](ctx context.Context, c *Client, e Endpoint) ([]T, error) {
	body, err := c.Do(ctx, e)
	if err != nil {
		return nil, err
	}

	items, err := Decode[T](body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", e, err)
	}

	c.logger.Debug().
		Str("endpoint", e.String()).
		Int("count", len(items)).
		Msg("Retrieved media from TMDB")

	return items, nil
}

// decodeMedia decodes a multi-search result according to its media_type
func decodeMedia(raw json.RawMessage) (Media, error) {
	var probe struct {
		MediaType string `json:"media_type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}

	switch MediaType(probe.MediaType) {
	case MediaTypeMovie:
		var m Movie
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
		}
		return &m, nil
	case MediaTypeTV:
		var t TVShow
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("unsupported media type %q", probe.MediaType)
	}
}

// EncodeMedia encodes a media record with its media_type, the shape multi
// search uses
func EncodeMedia(m Media) ([]byte, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("%w: %T is not an object", ErrEncoding, m)
	}

	prefix := fmt.Sprintf(`{"media_type":%q`, m.MediaType())
	if len(body) > 2 {
		prefix += ","
	}
	return append([]byte(prefix), body[1:]...), nil
}

package tmdb

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GetMovies fetches several movies concurrently, at most the configured
// concurrency at a time. Results keep the order of ids; the first failure
// cancels the remaining requests.
func (c *Client) GetMovies(ctx context.Context, ids []int, opts ...EndpointOption) ([]Movie, error) {
	if len(ids) == 0 {
		return []Movie{}, nil
	}

	movies := make([]Movie, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			movie, err := c.GetMovie(ctx, id, opts...)
			if err != nil {
				return fmt.Errorf("movie %d: %w", id, err)
			}
			// each goroutine owns its slot
			movies[i] = *movie
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetTVShows fetches several TV shows concurrently, see GetMovies
func (c *Client) GetTVShows(ctx context.Context, ids []int, opts ...EndpointOption) ([]TVShow, error) {
	if len(ids) == 0 {
		return []TVShow{}, nil
	}

	shows := make([]TVShow, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			show, err := c.GetTVShow(ctx, id, opts...)
			if err != nil {
				return fmt.Errorf("tv show %d: %w", id, err)
			}
			shows[i] = *show
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shows, nil
}

// Explore returns the listing selected by filter for the given mode. With
// MediaModeAll the movie and TV listings are fetched concurrently and movies
// come first in the result.
func (c *Client) Explore(ctx context.Context, mode MediaMode, filter ExploreFilter, opts ...EndpointOption) ([]Media, error) {
	var (
		movies []Movie
		shows  []TVShow
	)

	g, ctx := errgroup.WithContext(ctx)

	if mode == MediaModeMovie || mode == MediaModeAll {
		g.Go(func() error {
			var err error
			movies, err = fetchList[Movie](ctx, c, filter.movieEndpoint(opts...))
			return err
		})
	}
	if mode == MediaModeTV || mode == MediaModeAll {
		g.Go(func() error {
			var err error
			shows, err = fetchList[TVShow](ctx, c, filter.tvEndpoint(opts...))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Media, 0, len(movies)+len(shows))
	results = append(results, Movies(movies)...)
	results = append(results, TVShows(shows)...)
	return results, nil
}

// Search searches the given mode. MediaModeAll uses the multi search.
func (c *Client) Search(ctx context.Context, mode MediaMode, query string, opts ...EndpointOption) ([]Media, error) {
	switch mode {
	case MediaModeMovie:
		movies, err := c.SearchMovies(ctx, query, opts...)
		if err != nil {
			return nil, err
		}
		return Movies(movies), nil
	case MediaModeTV:
		shows, err := c.SearchTVShows(ctx, query, opts...)
		if err != nil {
			return nil, err
		}
		return TVShows(shows), nil
	default:
		return c.SearchMulti(ctx, query, opts...)
	}
}

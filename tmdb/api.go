package tmdb

import (
	"context"
)

// API defines the TMDB operations consumed by the CLI and the gateway
type API interface {
	// TestConnection verifies the client can authenticate against TMDB
	TestConnection(ctx context.Context) error

	// GetMovie retrieves a movie by ID
	GetMovie(ctx context.Context, id int, opts ...EndpointOption) (*Movie, error)

	// GetTVShow retrieves a TV show by ID
	GetTVShow(ctx context.Context, id int, opts ...EndpointOption) (*TVShow, error)

	// GetMovies retrieves several movies concurrently
	GetMovies(ctx context.Context, ids []int, opts ...EndpointOption) ([]Movie, error)

	// GetNowPlayingMovies lists movies in theaters
	GetNowPlayingMovies(ctx context.Context, opts ...EndpointOption) ([]Movie, error)

	// GetPopularMovies lists popular movies
	GetPopularMovies(ctx context.Context, opts ...EndpointOption) ([]Movie, error)

	// GetPopularTVShows lists popular TV shows
	GetPopularTVShows(ctx context.Context, opts ...EndpointOption) ([]TVShow, error)

	// GetOnTheAirTVShows lists TV shows airing soon
	GetOnTheAirTVShows(ctx context.Context, opts ...EndpointOption) ([]TVShow, error)

	// Search searches movies, TV shows or both
	Search(ctx context.Context, mode MediaMode, query string, opts ...EndpointOption) ([]Media, error)

	// Explore lists popular or latest media for a mode
	Explore(ctx context.Context, mode MediaMode, filter ExploreFilter, opts ...EndpointOption) ([]Media, error)
}

var _ API = (*Client)(nil)

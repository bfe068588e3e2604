package tmdb

import (
	"fmt"
	"strings"
)

// MediaMode selects which kind of media a listing or search covers
type MediaMode string

const (
	MediaModeTV    MediaMode = "tv"
	MediaModeMovie MediaMode = "movie"
	MediaModeAll   MediaMode = "all"
)

// MediaModes lists every mode in display order
var MediaModes = []MediaMode{MediaModeTV, MediaModeMovie, MediaModeAll}

// Title returns the display label of the mode
func (m MediaMode) Title() string {
	switch m {
	case MediaModeTV:
		return "TV"
	case MediaModeMovie:
		return "Movie"
	case MediaModeAll:
		return "All"
	default:
		return "Unknown"
	}
}

// ParseMediaMode parses a mode name case-insensitively
func ParseMediaMode(s string) (MediaMode, error) {
	switch m := MediaMode(strings.ToLower(strings.TrimSpace(s))); m {
	case MediaModeTV, MediaModeMovie, MediaModeAll:
		return m, nil
	case "":
		return MediaModeAll, nil
	}
	return "", fmt.Errorf("invalid media mode: %s (must be 'tv', 'movie' or 'all')", s)
}

// ExploreFilter selects the listing used when exploring media
type ExploreFilter string

const (
	ExploreFilterPopular ExploreFilter = "popular"
	ExploreFilterLatest  ExploreFilter = "latest"
)

// ExploreFilters lists every filter in display order
var ExploreFilters = []ExploreFilter{ExploreFilterPopular, ExploreFilterLatest}

// Title returns the display label of the filter
func (f ExploreFilter) Title() string {
	switch f {
	case ExploreFilterPopular:
		return "Popular"
	case ExploreFilterLatest:
		return "Latest"
	default:
		return "Unknown"
	}
}

// ParseExploreFilter parses a filter name case-insensitively
func ParseExploreFilter(s string) (ExploreFilter, error) {
	switch f := ExploreFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case ExploreFilterPopular, ExploreFilterLatest:
		return f, nil
	case "":
		return ExploreFilterPopular, nil
	}
	return "", fmt.Errorf("invalid explore filter: %s (must be 'popular' or 'latest')", s)
}

// movieEndpoint maps the filter onto the movie listing it selects
func (f ExploreFilter) movieEndpoint(opts ...EndpointOption) Endpoint {
	if f == ExploreFilterLatest {
		return NowPlayingMovies(opts...)
	}
	return PopularMovies(opts...)
}

// tvEndpoint maps the filter onto the TV listing it selects
func (f ExploreFilter) tvEndpoint(opts ...EndpointOption) Endpoint {
	if f == ExploreFilterLatest {
		return OnTheAirTVShows(opts...)
	}
	return PopularTVShows(opts...)
}

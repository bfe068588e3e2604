package tmdb

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"
)

// Kind identifies one TMDB operation
type Kind int

const (
	KindMovie Kind = iota
	KindTVShow
	KindNowPlayingMovies
	KindPopularMovies
	KindPopularTVShows
	KindOnTheAirTVShows
	KindSearch
	KindAuthentication
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindTVShow:
		return "tv"
	case KindNowPlayingMovies:
		return "now_playing"
	case KindPopularMovies:
		return "popular_movies"
	case KindPopularTVShows:
		return "popular_tv"
	case KindOnTheAirTVShows:
		return "on_the_air"
	case KindSearch:
		return "search"
	case KindAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

// Endpoint describes a single TMDB request. Endpoints are values and are
// built fresh for every call.
type Endpoint struct {
	kind   Kind
	id     int
	mode   MediaMode
	params url.Values
}

// EndpointOption attaches query parameters to an endpoint
type EndpointOption func(*Endpoint)

// WithPage selects the result page of a listing. Pages start at 1.
func WithPage(page int) EndpointOption {
	return func(e *Endpoint) {
		if page > 0 {
			e.params.Set("page", strconv.Itoa(page))
		}
	}
}

// WithLanguage sets the ISO 639-1 language of localized fields (e.g. "en-US")
func WithLanguage(language string) EndpointOption {
	return func(e *Endpoint) {
		if language != "" {
			e.params.Set("language", language)
		}
	}
}

// WithRegion sets the ISO 3166-1 region used by release-date based listings
func WithRegion(region string) EndpointOption {
	return func(e *Endpoint) {
		if region != "" {
			e.params.Set("region", region)
		}
	}
}

// WithAdult includes adult results in searches
func WithAdult(include bool) EndpointOption {
	return func(e *Endpoint) {
		e.params.Set("include_adult", strconv.FormatBool(include))
	}
}

func newEndpoint(kind Kind, opts []EndpointOption) Endpoint {
	e := Endpoint{
		kind:   kind,
		params: url.Values{},
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// MovieDetails fetches a single movie
func MovieDetails(id int, opts ...EndpointOption) Endpoint {
	e := newEndpoint(KindMovie, opts)
	e.id = id
	return e
}

// TVShowDetails fetches a single TV show
func TVShowDetails(id int, opts ...EndpointOption) Endpoint {
	e := newEndpoint(KindTVShow, opts)
	e.id = id
	return e
}

// NowPlayingMovies lists movies currently in theaters
func NowPlayingMovies(opts ...EndpointOption) Endpoint {
	return newEndpoint(KindNowPlayingMovies, opts)
}

// PopularMovies lists popular movies
func PopularMovies(opts ...EndpointOption) Endpoint {
	return newEndpoint(KindPopularMovies, opts)
}

// PopularTVShows lists popular TV shows
func PopularTVShows(opts ...EndpointOption) Endpoint {
	return newEndpoint(KindPopularTVShows, opts)
}

// OnTheAirTVShows lists TV shows with an episode airing in the next week
func OnTheAirTVShows(opts ...EndpointOption) Endpoint {
	return newEndpoint(KindOnTheAirTVShows, opts)
}

// Search looks up media by free-text query. MediaModeAll uses the multi search.
func Search(mode MediaMode, query string, opts ...EndpointOption) Endpoint {
	e := newEndpoint(KindSearch, opts)
	e.mode = mode
	e.params.Set("query", query)
	return e
}

// Authentication validates the configured access token
func Authentication() Endpoint {
	return newEndpoint(KindAuthentication, nil)
}

// Kind returns the operation the endpoint performs
func (e Endpoint) Kind() Kind {
	return e.kind
}

// ID returns the media ID of detail endpoints
func (e Endpoint) ID() int {
	return e.id
}

// Path returns the path appended to the API base URL
func (e Endpoint) Path() string {
	switch e.kind {
	case KindMovie:
		return fmt.Sprintf("/movie/%d", e.id)
	case KindTVShow:
		return fmt.Sprintf("/tv/%d", e.id)
	case KindNowPlayingMovies:
		return "/movie/now_playing"
	case KindPopularMovies:
		return "/movie/popular"
	case KindPopularTVShows:
		return "/tv/popular"
	case KindOnTheAirTVShows:
		return "/tv/on_the_air"
	case KindSearch:
		switch e.mode {
		case MediaModeMovie:
			return "/search/movie"
		case MediaModeTV:
			return "/search/tv"
		default:
			return "/search/multi"
		}
	case KindAuthentication:
		return "/authentication"
	default:
		return "/"
	}
}

// Method returns the HTTP method. Every TMDB read is a GET.
func (e Endpoint) Method() string {
	return http.MethodGet
}

// Query returns a copy of the endpoint's query parameters
func (e Endpoint) Query() url.Values {
	q := make(url.Values, len(e.params))
	maps.Copy(q, e.params)
	return q
}

// String returns the method and path, e.g. "GET /movie/550"
func (e Endpoint) String() string {
	return e.Method() + " " + e.Path()
}

// withDefault returns a copy with key set to value unless already present
func (e Endpoint) withDefault(key, value string) Endpoint {
	if value == "" || e.params.Has(key) {
		return e
	}
	e.params = e.Query()
	e.params.Set(key, value)
	return e
}

// localized reports whether the endpoint accepts a language parameter
func (e Endpoint) localized() bool {
	return e.kind != KindAuthentication
}

// regional reports whether the endpoint accepts a region parameter
func (e Endpoint) regional() bool {
	return e.kind == KindNowPlayingMovies || e.kind == KindPopularMovies || (e.kind == KindSearch && e.mode == MediaModeMovie)
}

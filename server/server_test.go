package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/eiga/filter"
	"github.com/s0up4200/eiga/library"
	"github.com/s0up4200/eiga/tmdb"
)

// fakeAPI serves canned TMDB data
type fakeAPI struct {
	movies  map[int]tmdb.Movie
	shows   map[int]tmdb.TVShow
	err     error
	pingErr error

	lastQuery string
	lastMode  tmdb.MediaMode
	lastOpts  int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		movies: map[int]tmdb.Movie{
			550: {ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
			603: {ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2},
			10:  {ID: 10, Title: "Low Rated", ReleaseDate: "2001-01-01", VoteAverage: 4.1},
		},
		shows: map[int]tmdb.TVShow{
			1396: {ID: 1396, Title: "Breaking Bad", FirstAirDate: "2008-01-20", VoteAverage: 8.9},
		},
	}
}

func (f *fakeAPI) TestConnection(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeAPI) GetMovie(ctx context.Context, id int, opts ...tmdb.EndpointOption) (*tmdb.Movie, error) {
	f.lastOpts = len(opts)
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.movies[id]
	if !ok {
		return nil, &tmdb.APIError{StatusCode: http.StatusNotFound}
	}
	return &m, nil
}

func (f *fakeAPI) GetTVShow(ctx context.Context, id int, opts ...tmdb.EndpointOption) (*tmdb.TVShow, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.shows[id]
	if !ok {
		return nil, &tmdb.APIError{StatusCode: http.StatusNotFound}
	}
	return &s, nil
}

func (f *fakeAPI) GetMovies(ctx context.Context, ids []int, opts ...tmdb.EndpointOption) ([]tmdb.Movie, error) {
	out := make([]tmdb.Movie, 0, len(ids))
	for _, id := range ids {
		m, err := f.GetMovie(ctx, id, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeAPI) movieList() ([]tmdb.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []tmdb.Movie{f.movies[550], f.movies[603], f.movies[10]}, nil
}

func (f *fakeAPI) showList() ([]tmdb.TVShow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []tmdb.TVShow{f.shows[1396]}, nil
}

func (f *fakeAPI) GetNowPlayingMovies(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.Movie, error) {
	f.lastOpts = len(opts)
	movies, err := f.movieList()
	if err != nil {
		return nil, err
	}
	return movies[:1], nil
}

func (f *fakeAPI) GetPopularMovies(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.Movie, error) {
	f.lastOpts = len(opts)
	return f.movieList()
}

func (f *fakeAPI) GetPopularTVShows(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.TVShow, error) {
	return f.showList()
}

func (f *fakeAPI) GetOnTheAirTVShows(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.TVShow, error) {
	return f.showList()
}

func (f *fakeAPI) Search(ctx context.Context, mode tmdb.MediaMode, query string, opts ...tmdb.EndpointOption) ([]tmdb.Media, error) {
	f.lastQuery = query
	f.lastMode = mode
	return f.Explore(ctx, mode, tmdb.ExploreFilterPopular, opts...)
}

func (f *fakeAPI) Explore(ctx context.Context, mode tmdb.MediaMode, _ tmdb.ExploreFilter, opts ...tmdb.EndpointOption) ([]tmdb.Media, error) {
	f.lastMode = mode
	movies, err := f.movieList()
	if err != nil {
		return nil, err
	}
	shows, _ := f.showList()

	switch mode {
	case tmdb.MediaModeMovie:
		return tmdb.Movies(movies), nil
	case tmdb.MediaModeTV:
		return tmdb.TVShows(shows), nil
	default:
		return append(tmdb.Movies(movies), tmdb.TVShows(shows)...), nil
	}
}

// fakeLibrary tracks movies in memory
type fakeLibrary struct {
	tracked map[int]bool
	err     error
}

func (l *fakeLibrary) Status(ctx context.Context, movie *tmdb.Movie) (*library.Entry, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &library.Entry{TMDBID: movie.ID, Title: movie.Title, Tracked: l.tracked[movie.ID]}, nil
}

func (l *fakeLibrary) Add(ctx context.Context, movie *tmdb.Movie) (*library.Entry, error) {
	entry, err := l.Status(ctx, movie)
	if err != nil {
		return nil, err
	}
	if entry.Tracked {
		return entry, library.ErrAlreadyTracked
	}
	l.tracked[movie.ID] = true
	entry.Tracked = true
	return entry, nil
}

func setupTestServer(t *testing.T, opts ...Option) (*Server, *fakeAPI) {
	t.Helper()

	api := newFakeAPI()
	logger := zerolog.New(io.Discard)
	return New(api, logger, opts...), api
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) listResponse {
	t.Helper()

	var resp listResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Error
}

func TestHealthHandler(t *testing.T) {
	s, api := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)

	rr = doRequest(t, s, http.MethodGet, "/healthz?upstream=true")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"tmdb":"ok"`)

	api.pingErr = &tmdb.APIError{StatusCode: http.StatusUnauthorized}
	rr = doRequest(t, s, http.MethodGet, "/healthz?upstream=true")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"tmdb":"Unauthorized"`)
}

func TestMovieHandler(t *testing.T) {
	s, api := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/movie/550?language=de-DE&region=DE")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, 2, api.lastOpts)

	var movie tmdb.Movie
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&movie))
	assert.Equal(t, 550, movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)
}

func TestTVShowHandler(t *testing.T) {
	s, _ := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/tv/1396")
	require.Equal(t, http.StatusOK, rr.Code)

	var show tmdb.TVShow
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&show))
	assert.Equal(t, "Breaking Bad", show.Title)

	rr = doRequest(t, s, http.MethodGet, "/api/tv/1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not Found", decodeError(t, rr))
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", &tmdb.APIError{StatusCode: 404}, http.StatusNotFound, "Not Found"},
		{"unauthorized", &tmdb.APIError{StatusCode: 401}, http.StatusUnauthorized, "Unauthorized"},
		{"server error", &tmdb.APIError{StatusCode: 503}, http.StatusBadGateway, "Server Error: 503"},
		{"unexpected", &tmdb.APIError{StatusCode: 403}, http.StatusBadGateway, "Unexpected Response: 403"},
		{"no data", tmdb.ErrNoData, http.StatusBadGateway, "No data was found"},
		{"decoding", fmt.Errorf("%w: bad shape", tmdb.ErrDecoding), http.StatusBadGateway, "Error decoding"},
		{"invalid url", tmdb.ErrInvalidURL, http.StatusInternalServerError, "Invalid URL"},
		{"transport", fmt.Errorf("%w: connection refused", tmdb.ErrUnknown), http.StatusBadGateway, "Unknown Error: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, api := setupTestServer(t)
			api.err = tt.err

			rr := doRequest(t, s, http.MethodGet, "/api/movie/550")
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rr))
		})
	}
}

func TestBadRequests(t *testing.T) {
	s, _ := setupTestServer(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"zero id", "/api/movie/0", http.StatusBadRequest},
		{"non numeric id", "/api/movie/abc", http.StatusNotFound},
		{"bad page", "/api/movies/popular?page=0", http.StatusBadRequest},
		{"bad adult flag", "/api/movies/popular?include_adult=maybe", http.StatusBadRequest},
		{"missing query", "/api/search/movie", http.StatusBadRequest},
		{"bad search mode", "/api/search/person?query=x", http.StatusNotFound},
		{"bad explore mode", "/api/explore?mode=books", http.StatusBadRequest},
		{"bad explore list", "/api/explore?list=upcoming", http.StatusBadRequest},
		{"unknown list", "/api/movies/top_rated", http.StatusNotFound},
		{"filter disabled", "/api/movies/popular?filter=VoteAverage%3E5", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.NotEmpty(t, decodeError(t, rr))
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := setupTestServer(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodDelete, "/api/movie/550"},
		{http.MethodPost, "/api/movie/550"},
		{http.MethodPut, "/api/movies/popular"},
		{http.MethodDelete, "/api/library/550"},
		{http.MethodPost, "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := doRequest(t, s, tt.method, tt.target)
			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Equal(t, "Method Not Allowed", decodeError(t, rr))
		})
	}
}

func TestNotFound(t *testing.T) {
	s, _ := setupTestServer(t)

	for _, target := range []string{"/api/unknown", "/api/movie/abc", "/nowhere"} {
		rr := doRequest(t, s, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, rr.Code, target)
		assert.Equal(t, "Not Found", decodeError(t, rr), target)
	}
}

func TestListHandlers(t *testing.T) {
	s, api := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/movies/popular?page=2")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeList(t, rr)
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Results, 3)
	assert.Contains(t, string(resp.Results[0]), `"media_type":"movie"`)
	assert.Equal(t, 1, api.lastOpts)

	rr = doRequest(t, s, http.MethodGet, "/api/movies/now_playing")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeList(t, rr).Count)

	for _, target := range []string{"/api/tv/popular", "/api/tv/on_the_air"} {
		rr = doRequest(t, s, http.MethodGet, target)
		require.Equal(t, http.StatusOK, rr.Code, target)
		resp = decodeList(t, rr)
		require.Len(t, resp.Results, 1)
		assert.Contains(t, string(resp.Results[0]), `"media_type":"tv"`)
		assert.Contains(t, string(resp.Results[0]), `"name":"Breaking Bad"`)
	}
}

func TestExploreHandler(t *testing.T) {
	s, api := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/explore")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 4, decodeList(t, rr).Count)
	assert.Equal(t, tmdb.MediaModeAll, api.lastMode)

	rr = doRequest(t, s, http.MethodGet, "/api/explore?mode=TV&list=latest")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeList(t, rr).Count)
	assert.Equal(t, tmdb.MediaModeTV, api.lastMode)
}

func TestSearchHandler(t *testing.T) {
	s, api := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/search/multi?query=fight+club")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fight club", api.lastQuery)
	assert.Equal(t, tmdb.MediaModeAll, api.lastMode)

	rr = doRequest(t, s, http.MethodGet, "/api/search/movie?query=matrix")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, tmdb.MediaModeMovie, api.lastMode)
	assert.Equal(t, 3, decodeList(t, rr).Count)
}

func TestFilterParameter(t *testing.T) {
	presets := filter.NewPresets()
	require.NoError(t, presets.Set("acclaimed", "VoteAverage >= 8"))
	s, _ := setupTestServer(t, WithFilters(presets))

	rr := doRequest(t, s, http.MethodGet, "/api/movies/popular?filter=acclaimed")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeList(t, rr)
	assert.Equal(t, 2, resp.Count)
	for _, raw := range resp.Results {
		assert.NotContains(t, string(raw), "Low Rated")
	}

	rr = doRequest(t, s, http.MethodGet, "/api/explore?filter=isTV()")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeList(t, rr).Count)

	rr = doRequest(t, s, http.MethodGet, "/api/movies/popular?filter=VoteAverage+%3E")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), `invalid filter "VoteAverage >"`)
}

func TestLibraryHandlers(t *testing.T) {
	lib := &fakeLibrary{tracked: map[int]bool{550: true}}
	s, _ := setupTestServer(t, WithLibrary(lib))

	rr := doRequest(t, s, http.MethodGet, "/api/library/550")
	require.Equal(t, http.StatusOK, rr.Code)
	var entry library.Entry
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entry))
	assert.True(t, entry.Tracked)

	rr = doRequest(t, s, http.MethodPost, "/api/library/603")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, lib.tracked[603])

	rr = doRequest(t, s, http.MethodPost, "/api/library/550")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(t, s, http.MethodPost, "/api/library/999")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	lib.err = errors.New("radarr unreachable")
	rr = doRequest(t, s, http.MethodGet, "/api/library/603")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, decodeError(t, rr), "radarr unreachable")
}

func TestLibraryDisabled(t *testing.T) {
	s, _ := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/library/550")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, api := setupTestServer(t)

	doRequest(t, s, http.MethodGet, "/api/movie/550")
	api.err = &tmdb.APIError{StatusCode: 500}
	doRequest(t, s, http.MethodGet, "/api/movie/550")

	rr := doRequest(t, s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `eiga_http_requests_total{method="GET",route="/api/movie/{id:[0-9]+}",status="200"} 1`), body)
	assert.Contains(t, body, `eiga_tmdb_errors_total{kind="server"} 1`)
	assert.Contains(t, body, "eiga_http_request_duration_seconds_bucket")
}

func TestListenAndServe_Shutdown(t *testing.T) {
	s, _ := setupTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, Config{Addr: "127.0.0.1:0"})
	}()

	cancel()
	assert.NoError(t, <-done)
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/s0up4200/eiga/filter"
	"github.com/s0up4200/eiga/library"
	"github.com/s0up4200/eiga/tmdb"
)

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

type healthResponse struct {
	Status string `json:"status"`
	TMDB   string `json:"tmdb,omitempty"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	if r.URL.Query().Get("upstream") == "true" {
		if err := s.api.TestConnection(r.Context()); err != nil {
			s.metrics.observeError(err)
			resp.Status = "degraded"
			resp.TMDB = tmdb.Describe(err)
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.TMDB = "ok"
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) movieHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	opts, ok := endpointOptions(w, r)
	if !ok {
		return
	}

	movie, err := s.api.GetMovie(r.Context(), id, opts...)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (s *Server) tvShowHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	opts, ok := endpointOptions(w, r)
	if !ok {
		return
	}

	show, err := s.api.GetTVShow(r.Context(), id, opts...)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, show)
}

func (s *Server) movieListHandler(w http.ResponseWriter, r *http.Request) {
	opts, ok := endpointOptions(w, r)
	if !ok {
		return
	}

	var (
		movies []tmdb.Movie
		err    error
	)
	switch mux.Vars(r)["list"] {
	case "now_playing":
		movies, err = s.api.GetNowPlayingMovies(r.Context(), opts...)
	default:
		movies, err = s.api.GetPopularMovies(r.Context(), opts...)
	}
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	s.writeMedia(w, r, tmdb.Movies(movies))
}

func (s *Server) tvListHandler(w http.ResponseWriter, r *http.Request) {
	opts, ok := endpointOptions(w, r)
	if !ok {
		return
	}

	var (
		shows []tmdb.TVShow
		err   error
	)
	switch mux.Vars(r)["list"] {
	case "on_the_air":
		shows, err = s.api.GetOnTheAirTVShows(r.Context(), opts...)
	default:
		shows, err = s.api.GetPopularTVShows(r.Context(), opts...)
	}
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	s.writeMedia(w, r, tmdb.TVShows(shows))
}

func (s *Server) exploreHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mode, err := tmdb.ParseMediaMode(query.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	explore, err := tmdb.ParseExploreFilter(query.Get("list"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, ok := endpointOptions(w, r)
	if !ok {
		return
	}

	media, err := s.api.Explore(r.Context(), mode, explore, opts...)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	s.writeMedia(w, r, media)
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	opts, ok := endpointOptions(w, r)
	if !ok {
		return
	}

	mode := tmdb.MediaMode(mux.Vars(r)["mode"])
	if mode == "multi" {
		mode = tmdb.MediaModeAll
	}

	media, err := s.api.Search(r.Context(), mode, query, opts...)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	s.writeMedia(w, r, media)
}

func (s *Server) libraryStatusHandler(w http.ResponseWriter, r *http.Request) {
	s.handleLibrary(w, r, s.libraryStatus)
}

func (s *Server) libraryAddHandler(w http.ResponseWriter, r *http.Request) {
	s.handleLibrary(w, r, s.libraryAdd)
}

func (s *Server) libraryStatus(w http.ResponseWriter, r *http.Request, movie *tmdb.Movie) {
	entry, err := s.library.Status(r.Context(), movie)
	if err != nil {
		s.logger.Error().Err(err).Int("tmdb_id", movie.ID).Msg("Radarr lookup failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) libraryAdd(w http.ResponseWriter, r *http.Request, movie *tmdb.Movie) {
	entry, err := s.library.Add(r.Context(), movie)
	switch {
	case errors.Is(err, library.ErrAlreadyTracked):
		writeJSON(w, http.StatusConflict, entry)
	case err != nil:
		s.logger.Error().Err(err).Int("tmdb_id", movie.ID).Msg("Radarr add failed")
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeJSON(w, http.StatusCreated, entry)
	}
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request, *tmdb.Movie)) {
	if s.library == nil {
		writeError(w, http.StatusServiceUnavailable, "Radarr is not configured")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	movie, err := s.api.GetMovie(r.Context(), id)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	next(w, r, movie)
}

// writeMedia applies the filter query parameter and writes the listing
func (s *Server) writeMedia(w http.ResponseWriter, r *http.Request, media []tmdb.Media) {
	if expression := r.URL.Query().Get("filter"); expression != "" {
		if s.filters == nil {
			writeError(w, http.StatusBadRequest, "filtering is not enabled")
			return
		}

		filtered, err := s.filters.Apply(r.Context(), expression, media)
		if err != nil {
			var compileErr *filter.CompilationError
			if errors.As(err, &compileErr) {
				writeError(w, http.StatusBadRequest, compileErr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.metrics.filtered.Add(float64(len(media) - len(filtered)))
		media = filtered
	}

	resp := listResponse{
		Count:   len(media),
		Results: make([]json.RawMessage, 0, len(media)),
	}
	for _, m := range media {
		body, err := tmdb.EncodeMedia(m)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		resp.Results = append(resp.Results, body)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	s.metrics.observeError(err)

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Int("status", status).Msg("TMDB request failed")
	}
	writeError(w, status, tmdb.Describe(err))
}

// statusFor maps client errors onto gateway responses
func statusFor(err error) int {
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tmdb.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, tmdb.ErrInvalidURL), errors.Is(err, tmdb.ErrEncoding):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id: %s", raw))
		return 0, false
	}
	return id, true
}

// endpointOptions reads the page, language, region and include_adult
// query parameters
func endpointOptions(w http.ResponseWriter, r *http.Request) ([]tmdb.EndpointOption, bool) {
	query := r.URL.Query()
	var opts []tmdb.EndpointOption

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid page: %s", raw))
			return nil, false
		}
		opts = append(opts, tmdb.WithPage(page))
	}
	if language := query.Get("language"); language != "" {
		opts = append(opts, tmdb.WithLanguage(language))
	}
	if region := query.Get("region"); region != "" {
		opts = append(opts, tmdb.WithRegion(region))
	}
	if raw := query.Get("include_adult"); raw != "" {
		adult, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid include_adult: %s", raw))
			return nil, false
		}
		opts = append(opts, tmdb.WithAdult(adult))
	}

	return opts, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

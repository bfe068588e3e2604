// Package server exposes the TMDB client as a small JSON gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/s0up4200/eiga/filter"
	"github.com/s0up4200/eiga/library"
	"github.com/s0up4200/eiga/tmdb"
)

const shutdownTimeout = 10 * time.Second

// Library is the Radarr hand-off used by the library routes
type Library interface {
	Status(ctx context.Context, movie *tmdb.Movie) (*library.Entry, error)
	Add(ctx context.Context, movie *tmdb.Movie) (*library.Entry, error)
}

var _ Library = (*library.Client)(nil)

// Config holds the HTTP listener settings
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithFilters enables the filter query parameter
func WithFilters(presets *filter.Presets) Option {
	return func(s *Server) {
		s.filters = presets
	}
}

// WithLibrary enables the library routes
func WithLibrary(lib Library) Option {
	return func(s *Server) {
		s.library = lib
	}
}

// Server routes gateway requests to the TMDB API
type Server struct {
	api     tmdb.API
	filters *filter.Presets
	library Library
	logger  zerolog.Logger
	metrics *metrics
	router  *mux.Router
}

// New creates a server on top of api
func New(api tmdb.API, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		api:     api,
		logger:  logger,
		metrics: newMetrics(),
		router:  mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.logRequests, s.metrics.middleware)

	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Details
	api.HandleFunc("/movie/{id:[0-9]+}", s.movieHandler).Methods(http.MethodGet)
	api.HandleFunc("/tv/{id:[0-9]+}", s.tvShowHandler).Methods(http.MethodGet)

	// Listings
	api.HandleFunc("/movies/{list:now_playing|popular}", s.movieListHandler).Methods(http.MethodGet)
	api.HandleFunc("/tv/{list:popular|on_the_air}", s.tvListHandler).Methods(http.MethodGet)
	api.HandleFunc("/explore", s.exploreHandler).Methods(http.MethodGet)

	// Search
	api.HandleFunc("/search/{mode:movie|tv|multi}", s.searchHandler).Methods(http.MethodGet)

	// Radarr
	api.HandleFunc("/library/{id:[0-9]+}", s.libraryStatusHandler).Methods(http.MethodGet)
	api.HandleFunc("/library/{id:[0-9]+}", s.libraryAddHandler).Methods(http.MethodPost)

	// subrouters do not inherit these from the root router
	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = http.HandlerFunc(notFound)
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", cfg.Addr).Msg("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

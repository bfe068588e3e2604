// Package library hands movies discovered on TMDB over to Radarr.
package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/s0up4200/eiga/tmdb"
)

const (
	// DefaultTimeout bounds every Radarr request
	DefaultTimeout = 30 * time.Second
	// MaxConcurrency bounds concurrent status lookups
	MaxConcurrency = 10
)

// ErrAlreadyTracked is returned by Add when Radarr already has the movie
var ErrAlreadyTracked = errors.New("movie is already in Radarr")

// AddOptions controls how new movies are added
type AddOptions struct {
	QualityProfileID int64
	RootFolder       string
	Monitored        bool
	SearchOnAdd      bool
}

// Entry describes the Radarr state of a TMDB movie
type Entry struct {
	TMDBID    int       `json:"tmdb_id"`
	Title     string    `json:"title"`
	Year      int       `json:"year,omitempty"`
	Tracked   bool      `json:"tracked"`
	RadarrID  int64     `json:"radarr_id,omitempty"`
	Monitored bool      `json:"monitored"`
	HasFile   bool      `json:"has_file"`
	Path      string    `json:"path,omitempty"`
	Added     time.Time `json:"added,omitzero"`
}

// QualityProfile is a Radarr quality profile
type QualityProfile struct {
	ID   int64
	Name string
}

// RootFolder is a Radarr root folder
type RootFolder struct {
	ID         int64
	Path       string
	FreeSpace  int64
	Accessible bool
}

// Client wraps the starr Radarr client
type Client struct {
	api     RadarrAPI
	options AddOptions
	logger  zerolog.Logger
}

// NewClient creates a new Radarr client and verifies the connection
func NewClient(url, apiKey string, options AddOptions, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, DefaultTimeout)
	radarrClient := radarr.New(config)

	// Test the connection
	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(radarrClient, options, logger), nil
}

// NewClientWithAPI creates a client on top of an existing API implementation
func NewClientWithAPI(api RadarrAPI, options AddOptions, logger zerolog.Logger) *Client {
	return &Client{
		api:     api,
		options: options,
		logger:  logger,
	}
}

// Status reports whether Radarr tracks the movie
func (c *Client) Status(ctx context.Context, movie *tmdb.Movie) (*Entry, error) {
	if movie == nil || movie.ID == 0 {
		return nil, errors.New("movie has no TMDB ID")
	}

	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: int64(movie.ID)})
	if err != nil {
		return nil, fmt.Errorf("failed to look up TMDB ID %d: %w", movie.ID, err)
	}

	entry := &Entry{
		TMDBID: movie.ID,
		Title:  movie.Title,
		Year:   movie.ReleaseYear(),
	}

	for _, m := range movies {
		if m == nil || m.TmdbID != int64(movie.ID) {
			continue
		}
		entry.Tracked = true
		entry.RadarrID = m.ID
		entry.Monitored = m.Monitored
		entry.HasFile = m.HasFile
		entry.Path = m.Path
		entry.Added = m.Added
		break
	}

	c.logger.Debug().
		Int("tmdb_id", movie.ID).
		Bool("tracked", entry.Tracked).
		Msg("Checked Radarr library")

	return entry, nil
}

// StatusMany looks up several movies concurrently. Entries keep the order
// of movies.
func (c *Client) StatusMany(ctx context.Context, movies []tmdb.Movie) ([]Entry, error) {
	entries := make([]Entry, len(movies))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	for i := range movies {
		g.Go(func() error {
			entry, err := c.Status(ctx, &movies[i])
			if err != nil {
				return err
			}
			entries[i] = *entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add adds the movie to Radarr with the configured options. Movies that are
// already tracked are left untouched and ErrAlreadyTracked is returned with
// their entry.
func (c *Client) Add(ctx context.Context, movie *tmdb.Movie) (*Entry, error) {
	entry, err := c.Status(ctx, movie)
	if err != nil {
		return nil, err
	}
	if entry.Tracked {
		return entry, ErrAlreadyTracked
	}
	if movie.Title == "" {
		return nil, fmt.Errorf("movie %d has no title", movie.ID)
	}

	input := &radarr.AddMovieInput{
		Title:            movie.Title,
		TmdbID:           int64(movie.ID),
		Year:             movie.ReleaseYear(),
		QualityProfileID: c.options.QualityProfileID,
		RootFolderPath:   c.options.RootFolder,
		Monitored:        c.options.Monitored,
		AddOptions: &radarr.AddMovieOptions{
			SearchForMovie: c.options.SearchOnAdd,
		},
	}

	added, err := c.api.AddMovieContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to add %q to Radarr: %w", movie.Title, err)
	}

	entry.Tracked = true
	if added != nil {
		entry.RadarrID = added.ID
		entry.Monitored = added.Monitored
		entry.HasFile = added.HasFile
		entry.Path = added.Path
		entry.Added = added.Added
	}

	c.logger.Info().
		Int("tmdb_id", movie.ID).
		Int64("radarr_id", entry.RadarrID).
		Str("title", movie.Title).
		Bool("search", c.options.SearchOnAdd).
		Msg("Added movie to Radarr")

	return entry, nil
}

// QualityProfiles lists the quality profiles configured in Radarr
func (c *Client) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	profiles, err := c.api.GetQualityProfilesContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quality profiles: %w", err)
	}

	out := make([]QualityProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, QualityProfile{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// RootFolders lists the root folders configured in Radarr
func (c *Client) RootFolders(ctx context.Context) ([]RootFolder, error) {
	folders, err := c.api.GetRootFoldersContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get root folders: %w", err)
	}

	out := make([]RootFolder, 0, len(folders))
	for _, f := range folders {
		out = append(out, RootFolder{
			ID:         f.ID,
			Path:       f.Path,
			FreeSpace:  f.FreeSpace,
			Accessible: f.Accessible,
		})
	}
	return out, nil
}

// TestConnection pings Radarr
func (c *Client) TestConnection() error {
	return c.api.Ping()
}

package library

import (
	"context"

	"golift.io/starr/radarr"
)

// RadarrAPI defines the Radarr operations the library hand-off needs
type RadarrAPI interface {
	// Movie operations
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	AddMovieContext(ctx context.Context, movie *radarr.AddMovieInput) (*radarr.Movie, error)

	// Settings used when adding
	GetQualityProfilesContext(ctx context.Context) ([]*radarr.QualityProfile, error)
	GetRootFoldersContext(ctx context.Context) ([]*radarr.RootFolder, error)

	// Health check
	Ping() error
}

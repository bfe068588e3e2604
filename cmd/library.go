package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/eiga/library"
	"github.com/s0up4200/eiga/tmdb"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Check or add movies in Radarr",
	Long: `Hand movies found on TMDB over to Radarr. Requires radarr.enabled in the
config; new movies use the configured quality profile and root folder.`,
}

var libraryStatusCmd = &cobra.Command{
	Use:   "status <id>...",
	Short: "Show whether Radarr tracks the given TMDB movies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryStatus,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Add TMDB movies to Radarr",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryAdd,
}

var librarySettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List Radarr quality profiles and root folders",
	Args:  cobra.NoArgs,
	RunE:  runLibrarySettings,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryStatusCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(librarySettingsCmd)
}

// newLibraryClient connects to Radarr with the configured add options
func newLibraryClient() (*library.Client, error) {
	if !cfg.Radarr.Enabled {
		return nil, errors.New("radarr integration is disabled; set radarr.enabled in config")
	}

	client, err := library.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, library.AddOptions{
		QualityProfileID: cfg.Radarr.QualityProfileID,
		RootFolder:       cfg.Radarr.RootFolder,
		Monitored:        cfg.Radarr.Monitored,
		SearchOnAdd:      cfg.Radarr.SearchOnAdd,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Radarr client: %w", err)
	}
	return client, nil
}

func runLibraryStatus(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	client, err := newLibraryClient()
	if err != nil {
		return err
	}

	movies, err := tmdbClient.GetMovies(cmd.Context(), ids, endpointOptions()...)
	if err != nil {
		return fmt.Errorf("failed to get movies: %s", tmdb.Describe(err))
	}

	entries, err := client.StatusMany(cmd.Context(), movies)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entries)
	}
	fmt.Print(library.FormatEntries(entries))
	return nil
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	client, err := newLibraryClient()
	if err != nil {
		return err
	}

	movies, err := tmdbClient.GetMovies(cmd.Context(), ids, endpointOptions()...)
	if err != nil {
		return fmt.Errorf("failed to get movies: %s", tmdb.Describe(err))
	}

	var added, skipped, failed int
	for i := range movies {
		movie := &movies[i]
		fmt.Printf("→ Adding %s (%d)... ", movie.Title, movie.ReleaseYear())

		_, err := client.Add(cmd.Context(), movie)
		switch {
		case errors.Is(err, library.ErrAlreadyTracked):
			fmt.Println("already in Radarr")
			skipped++
		case err != nil:
			logger.Error().Err(err).Int("tmdb_id", movie.ID).Msg("Failed to add movie")
			fmt.Printf("✗ Failed: %v\n", err)
			failed++
		default:
			fmt.Println("✓ Added")
			added++
		}
	}

	fmt.Printf("\n✓ Added %d, skipped %d", added, skipped)
	if failed > 0 {
		fmt.Printf(", ✗ failed %d\n", failed)
		return fmt.Errorf("failed to add %d of %d movies", failed, len(movies))
	}
	fmt.Println()
	return nil
}

func runLibrarySettings(cmd *cobra.Command, args []string) error {
	client, err := newLibraryClient()
	if err != nil {
		return err
	}

	profiles, err := client.QualityProfiles(cmd.Context())
	if err != nil {
		return err
	}
	folders, err := client.RootFolders(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"quality_profiles": profiles,
			"root_folders":     folders,
		})
	}

	fmt.Println("Quality profiles:")
	for _, p := range profiles {
		marker := " "
		if p.ID == cfg.Radarr.QualityProfileID {
			marker = "*"
		}
		fmt.Printf("  %s %s (ID: %d)\n", marker, p.Name, p.ID)
	}

	fmt.Println("\nRoot folders:")
	for _, f := range folders {
		marker := " "
		if f.Path == cfg.Radarr.RootFolder {
			marker = "*"
		}
		status := fmt.Sprintf("%.1f GiB free", float64(f.FreeSpace)/(1<<30))
		if !f.Accessible {
			status = "inaccessible"
		}
		fmt.Printf("  %s %s (%s)\n", marker, f.Path, status)
	}
	return nil
}

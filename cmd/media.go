package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/eiga/tmdb"
)

var (
	modeFlag      string
	exploreList   string
	imageKindFlag string
	imageSizeFlag string
)

// listings maps the list command's arguments onto client calls
var listings = map[string]struct {
	title string
	fetch func(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.Media, error)
}{
	"now_playing": {"Now Playing Movies", func(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.Media, error) {
		movies, err := tmdbClient.GetNowPlayingMovies(ctx, opts...)
		return tmdb.Movies(movies), err
	}},
	"popular": {"Popular Movies", func(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.Media, error) {
		movies, err := tmdbClient.GetPopularMovies(ctx, opts...)
		return tmdb.Movies(movies), err
	}},
	"popular_tv": {"Popular TV Shows", func(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.Media, error) {
		shows, err := tmdbClient.GetPopularTVShows(ctx, opts...)
		return tmdb.TVShows(shows), err
	}},
	"on_the_air": {"TV Shows On The Air", func(ctx context.Context, opts ...tmdb.EndpointOption) ([]tmdb.Media, error) {
		shows, err := tmdbClient.GetOnTheAirTVShows(ctx, opts...)
		return tmdb.TVShows(shows), err
	}},
}

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:   "movie <id>...",
	Short: "Show movie details",
	Long:  `Fetch one or more movies by TMDB ID. Several IDs are fetched concurrently.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMovie,
}

// tvCmd represents the tv command
var tvCmd = &cobra.Command{
	Use:   "tv <id>...",
	Short: "Show TV show details",
	Long:  `Fetch one or more TV shows by TMDB ID. Several IDs are fetched concurrently.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTVShow,
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:       "list <now_playing|popular|popular_tv|on_the_air>",
	Short:     "List movies or TV shows",
	Long:      `List now playing or popular movies, or popular or on the air TV shows.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"now_playing", "popular", "popular_tv", "on_the_air"},
	RunE:      runList,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies and TV shows",
	Long: `Search TMDB by title. The --mode flag selects movies, TV shows or both;
searching both uses the multi search and skips people.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// exploreCmd represents the explore command
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore popular or latest media",
	Long: `Explore the popular or latest listings of movies, TV shows or both.

Latest maps to now playing movies and TV shows on the air. Results can be
narrowed with --filter, which takes a preset name from the config or an
expression such as:

  VoteAverage >= 7 && hasGenre("Drama")
  Year >= 2020 && isMovie()
  daysSince(ReleaseDate) < 30
  includes(Title, "star") || Overview contains "space"`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image <movie|tv> <id>",
	Short: "Print the poster or backdrop URL of a movie or TV show",
	Args:  cobra.ExactArgs(2),
	RunE:  runImage,
}

func init() {
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(tvCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(imageCmd)

	for _, c := range []*cobra.Command{listCmd, searchCmd, exploreCmd} {
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter preset or expression")
	}

	searchCmd.Flags().StringVarP(&modeFlag, "mode", "m", string(tmdb.MediaModeAll), "media to search (tv/movie/all)")
	exploreCmd.Flags().StringVarP(&modeFlag, "mode", "m", string(tmdb.MediaModeAll), "media to explore (tv/movie/all)")
	exploreCmd.Flags().StringVar(&exploreList, "list", string(tmdb.ExploreFilterPopular), "listing to explore (popular/latest)")

	imageCmd.Flags().StringVarP(&imageKindFlag, "kind", "k", string(tmdb.ImageKindPoster), "image kind (poster/backdrop)")
	imageCmd.Flags().StringVarP(&imageSizeFlag, "size", "s", "", "image size (default w500 for posters, w1280 for backdrops)")
}

func runMovie(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	movies, err := tmdbClient.GetMovies(cmd.Context(), ids, endpointOptions()...)
	if err != nil {
		return fmt.Errorf("failed to get movies: %s", tmdb.Describe(err))
	}

	if jsonOutput {
		return printJSON(movies)
	}
	for i := range movies {
		fmt.Print(formatter.FormatMovie(&movies[i]))
	}
	return nil
}

func runTVShow(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	shows, err := tmdbClient.GetTVShows(cmd.Context(), ids, endpointOptions()...)
	if err != nil {
		return fmt.Errorf("failed to get TV shows: %s", tmdb.Describe(err))
	}

	if jsonOutput {
		return printJSON(shows)
	}
	for i := range shows {
		fmt.Print(formatter.FormatTVShow(&shows[i]))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	listing := listings[args[0]]

	logger.Debug().Str("list", args[0]).Msg("Fetching listing")

	media, err := listing.fetch(cmd.Context(), endpointOptions()...)
	if err != nil {
		return fmt.Errorf("failed to get %s: %s", args[0], tmdb.Describe(err))
	}
	return printMedia(cmd.Context(), listing.title, media)
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, err := tmdb.ParseMediaMode(modeFlag)
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	logger.Debug().Str("query", query).Str("mode", string(mode)).Msg("Searching")

	media, err := tmdbClient.Search(cmd.Context(), mode, query, endpointOptions()...)
	if err != nil {
		return fmt.Errorf("search failed: %s", tmdb.Describe(err))
	}
	return printMedia(cmd.Context(), fmt.Sprintf("%s results for %q", mode.Title(), query), media)
}

func runExplore(cmd *cobra.Command, args []string) error {
	mode, err := tmdb.ParseMediaMode(modeFlag)
	if err != nil {
		return err
	}
	list, err := tmdb.ParseExploreFilter(exploreList)
	if err != nil {
		return err
	}

	media, err := tmdbClient.Explore(cmd.Context(), mode, list, endpointOptions()...)
	if err != nil {
		return fmt.Errorf("explore failed: %s", tmdb.Describe(err))
	}
	return printMedia(cmd.Context(), fmt.Sprintf("%s %s", list.Title(), mode.Title()), media)
}

func runImage(cmd *cobra.Command, args []string) error {
	mode, err := tmdb.ParseMediaMode(args[0])
	if err != nil || mode == tmdb.MediaModeAll {
		return fmt.Errorf("invalid media kind: %s (must be 'movie' or 'tv')", args[0])
	}
	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}

	var media tmdb.Media
	if mode == tmdb.MediaModeMovie {
		media, err = tmdbClient.GetMovie(cmd.Context(), ids[0], endpointOptions()...)
	} else {
		media, err = tmdbClient.GetTVShow(cmd.Context(), ids[0], endpointOptions()...)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s %d: %s", mode, ids[0], tmdb.Describe(err))
	}

	u, err := imageURL(media, tmdb.ImageKind(imageKindFlag), imageSizeFlag)
	if err != nil {
		return errors.New(tmdb.Describe(err))
	}
	fmt.Println(u)
	return nil
}

// imageURL resolves the poster or backdrop URL of media at the given size
func imageURL(media tmdb.Media, kind tmdb.ImageKind, size string) (string, error) {
	var path string
	switch kind {
	case tmdb.ImageKindPoster:
		path = media.Images().Poster
		if size == "" {
			size = string(tmdb.PosterW500)
		}
	case tmdb.ImageKindBackdrop:
		path = media.Images().Backdrop
		if size == "" {
			size = string(tmdb.BackdropW1280)
		}
	default:
		return "", fmt.Errorf("invalid image kind: %s (must be 'poster' or 'backdrop')", kind)
	}

	imageSize, err := tmdb.ParseImageSize(kind, size)
	if err != nil {
		return "", err
	}
	return tmdbClient.Images().BuildURL(path, imageSize)
}

// printMedia applies --filter and prints the listing
func printMedia(ctx context.Context, title string, media []tmdb.Media) error {
	if filterExpr != "" {
		filtered, err := filters.Apply(ctx, filterExpr, media)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		logger.Debug().
			Str("filter", filterExpr).
			Int("total", len(media)).
			Int("matched", len(filtered)).
			Msg("Applied filter")
		media = filtered
	}

	if jsonOutput {
		raw := make([]json.RawMessage, 0, len(media))
		for _, m := range media {
			body, err := tmdb.EncodeMedia(m)
			if err != nil {
				return err
			}
			raw = append(raw, body)
		}
		return printJSON(raw)
	}

	fmt.Print(formatter.FormatMediaList(title, media, tmdb.FormatOptions{
		ShowDetails: cfg.Display.ShowDetails,
		ShowImages:  cfg.Display.ShowImages,
		ImageSize:   tmdb.PosterSize(cfg.Display.PosterSize),
	}))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id '%s': must be a positive integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}


package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/eiga/cache"
	"github.com/s0up4200/eiga/config"
	"github.com/s0up4200/eiga/filter"
	"github.com/s0up4200/eiga/tmdb"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	cacheStore cache.Backend
	filters    *filter.Presets
	formatter  *tmdb.ConsoleFormatter

	// Command flags
	jsonOutput bool
	language   string
	region     string
	page       int
	filterExpr string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "eiga",
	Short: "Browse movies and TV shows on TMDB",
	Long: `eiga is a CLI tool for The Movie Database. It fetches movie and TV show
details, popular and now-playing listings and search results, filters them
with expressions and can hand movies over to Radarr.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
}

// SetVersion sets the version reported by the version and update commands
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "", "ISO 639-1 language of localized fields (e.g. de-DE)")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "ISO 3166-1 region of release-date based listings")
	rootCmd.PersistentFlags().IntVarP(&page, "page", "p", 0, "result page of listings and searches")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	opts := []tmdb.Option{
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithDefaultLanguage(cfg.TMDB.Language),
		tmdb.WithDefaultRegion(cfg.TMDB.Region),
		tmdb.WithConcurrency(cfg.TMDB.Concurrency),
		tmdb.WithImageConfig(tmdb.ImageConfig{BaseURL: cfg.Images.BaseURL}),
		tmdb.WithUserAgent("eiga/" + version),
	}

	// Create the response cache if enabled
	if cfg.Cache.Enabled {
		cacheStore, err = cache.New(cache.Options{
			Backend: cfg.Cache.Backend,
			Path:    cfg.Cache.Path,
			TTL:     cfg.Cache.TTL,
			Size:    cfg.Cache.Size,
		}, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to open response cache, continuing without it")
		} else {
			opts = append(opts, tmdb.WithCache(cacheStore))
			logger.Debug().Str("backend", cfg.Cache.Backend).Int("entries", cacheStore.Len()).Msg("Response cache enabled")
		}
	}

	// Create TMDB client
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.AccessToken, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	// Register filter presets
	filters = filter.NewPresets(filter.WithWorkers(cfg.TMDB.Concurrency))
	if err := filters.Load(cfg.Filter); err != nil {
		return fmt.Errorf("failed to load filter presets: %w", err)
	}

	formatter = tmdb.NewConsoleFormatter(tmdbClient.Images())

	return nil
}

// closeApp releases the response cache
func closeApp(cmd *cobra.Command, args []string) error {
	if cacheStore == nil {
		return nil
	}
	if err := cacheStore.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// endpointOptions builds the per-request options from the global flags
func endpointOptions() []tmdb.EndpointOption {
	var opts []tmdb.EndpointOption
	if page > 0 {
		opts = append(opts, tmdb.WithPage(page))
	}
	if language != "" {
		opts = append(opts, tmdb.WithLanguage(language))
	}
	if region != "" {
		opts = append(opts, tmdb.WithRegion(region))
	}
	return opts
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDB",
	Long:  `Test the access token against TMDB and, when enabled, the connection to Radarr.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)

	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("TMDB connection failed: %s", tmdb.Describe(err))
	}
	fmt.Println("✓ Connection successful!")

	if cacheStore != nil {
		fmt.Printf("\nResponse cache: %s (%d entries)\n", cfg.Cache.Backend, cacheStore.Len())
	} else {
		fmt.Println("\nResponse cache: Disabled")
	}

	if names := filters.Names(); len(names) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range names {
			fmt.Printf("  • %s: %s\n", name, cfg.Filter[name])
		}
	}

	// Test Radarr if configured
	if cfg.Radarr.Enabled {
		fmt.Printf("\nTesting connection to Radarr at %s...\n", cfg.Radarr.URL)
		client, err := newLibraryClient()
		if err != nil {
			return err
		}
		fmt.Println("✓ Radarr connection successful!")

		profiles, err := client.QualityProfiles(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("- Quality profiles: %d\n", len(profiles))
	} else {
		fmt.Println("\nRadarr integration: Disabled")
	}

	return nil
}

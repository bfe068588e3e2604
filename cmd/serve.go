package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/eiga/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the TMDB client as a JSON gateway",
	Long: `Start an HTTP server exposing movie and TV show details, listings, search and
explore as JSON. Listings accept a filter query parameter, and when Radarr is
enabled /api/library/{id} reports or adds movies. Prometheus metrics are
served at /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{server.WithFilters(filters)}
	if cfg.Radarr.Enabled {
		client, err := newLibraryClient()
		if err != nil {
			logger.Warn().Err(err).Msg("Radarr unavailable, library routes disabled")
		} else {
			opts = append(opts, server.WithLibrary(client))
			logger.Info().Msg("Radarr integration enabled")
		}
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(tmdbClient, logger, opts...)
	return srv.ListenAndServe(ctx, server.Config{
		Addr:         addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
}

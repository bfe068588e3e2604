package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/eiga"

var checkOnly bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the version",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eiga %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update eiga to the latest release",
	Long:              `Check GitHub for a newer release and replace the running binary with it.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	RunE:              runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")
}

// skipInit sets up console logging for commands that need no configuration
func skipInit(cmd *cobra.Command, args []string) error {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Printf("✓ eiga %s is up to date\n", current)
		return nil
	}

	fmt.Printf("New release available: %s (current %s)\n", latest.Version(), current)
	if checkOnly {
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return errors.New("could not locate executable path")
	}

	logger.Info().
		Str("version", latest.Version()).
		Str("asset", latest.AssetName).
		Msg("Downloading release")

	if err := selfupdate.UpdateTo(cmd.Context(), latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Printf("✓ Updated to %s\n", latest.Version())
	return nil
}

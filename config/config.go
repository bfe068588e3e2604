package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/eiga/tmdb"
)

// EnvPrefix prefixes every environment override, e.g. EIGA_TMDB_ACCESS_TOKEN
const EnvPrefix = "EIGA"

// Load loads the configuration from file, .env and the environment. A
// missing config file is only an error when configPath is given explicitly.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the token is commonly exported without the prefix
	if err := v.BindEnv("tmdb.access_token", EnvPrefix+"_TMDB_ACCESS_TOKEN", "TMDB_ACCESS_TOKEN"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".eiga"))
		}

		// Check /etc
		v.AddConfigPath("/etc/eiga/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads ./.env into the process environment when present
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("error loading .env: %w", err)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.access_token", "")
	v.SetDefault("tmdb.timeout", tmdb.DefaultTimeout)
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.region", "")
	v.SetDefault("tmdb.concurrency", tmdb.DefaultConcurrency)

	v.SetDefault("images.base_url", tmdb.DefaultImageBaseURL)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.backend", "bolt")
	v.SetDefault("cache.path", defaultCachePath())
	v.SetDefault("cache.ttl", "6h")
	v.SetDefault("cache.size", 500)

	// Display defaults
	v.SetDefault("display.show_details", true)
	v.SetDefault("display.show_images", false)
	v.SetDefault("display.poster_size", string(tmdb.PosterW500))

	// Radarr defaults
	v.SetDefault("radarr.enabled", false)
	v.SetDefault("radarr.url", "http://localhost:7878")
	v.SetDefault("radarr.api_key", "")
	v.SetDefault("radarr.quality_profile_id", 1)
	v.SetDefault("radarr.root_folder", "")
	v.SetDefault("radarr.monitored", true)
	v.SetDefault("radarr.search_on_add", false)

	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

func defaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "eiga", "cache.db")
	}
	return "eiga-cache.db"
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.AccessToken == "" || cfg.TMDB.AccessToken == "your-access-token-here" {
		return fmt.Errorf("tmdb.access_token must be set to a valid read access token")
	}

	if err := validateURL("tmdb.base_url", cfg.TMDB.BaseURL); err != nil {
		return err
	}
	if err := validateURL("images.base_url", cfg.Images.BaseURL); err != nil {
		return err
	}

	if cfg.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive")
	}
	if cfg.TMDB.Concurrency < 1 {
		return fmt.Errorf("tmdb.concurrency must be at least 1")
	}

	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case "bolt":
			if cfg.Cache.Path == "" {
				return fmt.Errorf("cache.path is required for the bolt backend")
			}
		case "memory":
			if cfg.Cache.Size < 1 {
				return fmt.Errorf("cache.size must be at least 1")
			}
		default:
			return fmt.Errorf("invalid cache.backend: %s (must be 'bolt' or 'memory')", cfg.Cache.Backend)
		}
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive")
		}
	}

	if _, err := tmdb.ParseImageSize(tmdb.ImageKindPoster, cfg.Display.PosterSize); err != nil {
		return fmt.Errorf("invalid display.poster_size: %w", err)
	}

	if cfg.Radarr.Enabled {
		if err := validateURL("radarr.url", cfg.Radarr.URL); err != nil {
			return err
		}
		if cfg.Radarr.APIKey == "" || cfg.Radarr.APIKey == "your-api-key-here" {
			return fmt.Errorf("radarr.api_key must be set to a valid API key")
		}
		if cfg.Radarr.QualityProfileID < 1 {
			return fmt.Errorf("radarr.quality_profile_id must be set")
		}
		if cfg.Radarr.RootFolder == "" {
			return fmt.Errorf("radarr.root_folder is required")
		}
	}

	for name, expr := range cfg.Filter {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter.%s is empty", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

func validateURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL: %s", key, raw)
	}
	return nil
}

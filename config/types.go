package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Images  ImagesConfig  `mapstructure:"images"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Display DisplayConfig `mapstructure:"display"`
	Radarr  RadarrConfig  `mapstructure:"radarr"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Language    string        `mapstructure:"language"`
	Region      string        `mapstructure:"region"`
	Concurrency int           `mapstructure:"concurrency"`
}

// ImagesConfig holds the image CDN settings
type ImagesConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig controls the optional response cache
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend"`
	Path    string        `mapstructure:"path"`
	TTL     time.Duration `mapstructure:"ttl"`
	Size    int           `mapstructure:"size"`
}

// FilterConfig contains named filter expressions
type FilterConfig map[string]string

// DisplayConfig contains console output settings
type DisplayConfig struct {
	ShowDetails bool   `mapstructure:"show_details"`
	ShowImages  bool   `mapstructure:"show_images"`
	PosterSize  string `mapstructure:"poster_size"`
}

// RadarrConfig holds Radarr API connection details and the settings used
// when adding movies
type RadarrConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	URL              string `mapstructure:"url"`
	APIKey           string `mapstructure:"api_key"`
	QualityProfileID int64  `mapstructure:"quality_profile_id"`
	RootFolder       string `mapstructure:"root_folder"`
	Monitored        bool   `mapstructure:"monitored"`
	SearchOnAdd      bool   `mapstructure:"search_on_add"`
}

// ServerConfig contains the JSON gateway settings
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

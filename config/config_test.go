package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:     "https://api.themoviedb.org/3",
			AccessToken: "token",
			Timeout:     10 * time.Second,
			Concurrency: 4,
		},
		Images:  ImagesConfig{BaseURL: "https://image.tmdb.org/t/p/"},
		Display: DisplayConfig{PosterSize: "w500"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:    "missing access token",
			modify:  func(c *Config) { c.TMDB.AccessToken = "" },
			wantErr: "tmdb.access_token",
		},
		{
			name:    "placeholder access token",
			modify:  func(c *Config) { c.TMDB.AccessToken = "your-access-token-here" },
			wantErr: "tmdb.access_token",
		},
		{
			name:    "relative base URL",
			modify:  func(c *Config) { c.TMDB.BaseURL = "api.themoviedb.org/3" },
			wantErr: "tmdb.base_url",
		},
		{
			name:    "invalid image base URL",
			modify:  func(c *Config) { c.Images.BaseURL = "ftp://images" },
			wantErr: "images.base_url",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.TMDB.Timeout = 0 },
			wantErr: "tmdb.timeout",
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.TMDB.Concurrency = 0 },
			wantErr: "tmdb.concurrency",
		},
		{
			name: "unknown cache backend",
			modify: func(c *Config) {
				c.Cache = CacheConfig{Enabled: true, Backend: "redis", TTL: time.Hour}
			},
			wantErr: "cache.backend",
		},
		{
			name: "disabled cache is not validated",
			modify: func(c *Config) {
				c.Cache = CacheConfig{Enabled: false, Backend: "redis"}
			},
		},
		{
			name: "cache without ttl",
			modify: func(c *Config) {
				c.Cache = CacheConfig{Enabled: true, Backend: "bolt", Path: "cache.db"}
			},
			wantErr: "cache.ttl",
		},
		{
			name: "memory cache without size",
			modify: func(c *Config) {
				c.Cache = CacheConfig{Enabled: true, Backend: "memory", TTL: time.Hour}
			},
			wantErr: "cache.size",
		},
		{
			name:    "invalid poster size",
			modify:  func(c *Config) { c.Display.PosterSize = "w1280" },
			wantErr: "display.poster_size",
		},
		{
			name: "radarr without api key",
			modify: func(c *Config) {
				c.Radarr = RadarrConfig{Enabled: true, URL: "http://localhost:7878", QualityProfileID: 1, RootFolder: "/movies"}
			},
			wantErr: "radarr.api_key",
		},
		{
			name: "radarr without root folder",
			modify: func(c *Config) {
				c.Radarr = RadarrConfig{Enabled: true, URL: "http://localhost:7878", APIKey: "key", QualityProfileID: 1}
			},
			wantErr: "radarr.root_folder",
		},
		{
			name: "radarr complete",
			modify: func(c *Config) {
				c.Radarr = RadarrConfig{Enabled: true, URL: "http://localhost:7878", APIKey: "key", QualityProfileID: 1, RootFolder: "/movies"}
			},
		},
		{
			name:    "empty filter",
			modify:  func(c *Config) { c.Filter = FilterConfig{"recent": " "} },
			wantErr: "filter.recent",
		},
		{
			name:    "invalid logging level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid logging format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want message about %s", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  access_token: file-token
  language: fr-FR
  timeout: 5s
cache:
  enabled: true
  backend: memory
  ttl: 30m
filter:
  recent: "Year >= 2020"
logging:
  level: debug
`)

	t.Setenv("TMDB_ACCESS_TOKEN", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TMDB.AccessToken != "file-token" {
		t.Errorf("access token = %q", cfg.TMDB.AccessToken)
	}
	if cfg.TMDB.Language != "fr-FR" {
		t.Errorf("language = %q", cfg.TMDB.Language)
	}
	if cfg.TMDB.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.TMDB.Timeout)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("base url default = %q", cfg.TMDB.BaseURL)
	}
	if cfg.Cache.TTL != 30*time.Minute || cfg.Cache.Size != 500 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Filter["recent"] != "Year >= 2020" {
		t.Errorf("filter = %v", cfg.Filter)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr default = %q", cfg.Server.Addr)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  access_token: file-token
`)
	t.Setenv("EIGA_TMDB_ACCESS_TOKEN", "env-token")
	t.Setenv("EIGA_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TMDB.AccessToken != "env-token" {
		t.Errorf("access token = %q, want env-token", cfg.TMDB.AccessToken)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_WithoutConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EIGA_TMDB_ACCESS_TOKEN", "env-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TMDB.AccessToken != "env-token" {
		t.Errorf("access token = %q", cfg.TMDB.AccessToken)
	}
	if cfg.Cache.Enabled {
		t.Errorf("cache should be disabled by default")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}

	path := writeConfig(t, `
tmdb:
  access_token: ""
`)
	t.Setenv("EIGA_TMDB_ACCESS_TOKEN", "")
	t.Setenv("TMDB_ACCESS_TOKEN", "")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("expected validation error, got %v", err)
	}
}

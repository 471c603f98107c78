// Package config loads and validates application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey  string `toml:"-"`
	BaseURL string `toml:"base_url"`
}

// OMDB contains configuration for the secondary rating source. The
// integration is optional: without an API key enrichment is disabled.
type OMDB struct {
	APIKey  string `toml:"-"`
	BaseURL string `toml:"base_url"`
}

// Config holds all application settings. API keys are read from the
// environment only, never from the config file.
type Config struct {
	DataFile           string `toml:"data_file"`
	CachePath          string `toml:"cache_path"`
	Bind               string `toml:"bind"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
	MatchThreshold     int    `toml:"match_threshold"`
	TMDB               TMDB   `toml:"tmdb"`
	OMDB               OMDB   `toml:"omdb"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataFile:           "data/movies.csv",
		CachePath:          "data/resolve_cache.db",
		Bind:               ":8080",
		HTTPTimeoutSeconds: 10,
		MatchThreshold:     75,
		TMDB: TMDB{
			BaseURL: "https://api.themoviedb.org/3",
		},
		OMDB: OMDB{
			BaseURL: "https://www.omdbapi.com",
		},
	}
}

// Load reads the TOML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error; the defaults are
// used as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// No config file; defaults apply.
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		c.TMDB.APIKey = v
	}
	if v := os.Getenv("OMDB_API_KEY"); v != "" {
		c.OMDB.APIKey = v
	}
}

// Validate reports configuration the application cannot start with.
func (c Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return errors.New("TMDB_API_KEY environment variable is required")
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		return fmt.Errorf("match_threshold must be between 0 and 100, got %d", c.MatchThreshold)
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("http_timeout_seconds must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	if c.DataFile == "" {
		return errors.New("data_file must not be empty")
	}
	return nil
}

// HTTPTimeout returns the upstream request timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

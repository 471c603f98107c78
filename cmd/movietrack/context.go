package main

import (
	"log"
	"os"

	"movietracker/cache"
	"movietracker/config"
	"movietracker/library"
	"movietracker/resolver"
	"movietracker/services"
	"movietracker/store"

	"github.com/joho/godotenv"
)

// commandContext lazily builds the shared application components so that
// commands which never touch the resolver (list, clear) do not require an
// API key.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	path := *c.configFlag
	if path == "" {
		path = os.Getenv("MOVIETRACKER_CONFIG")
	}
	if path == "" {
		path = "movietracker.toml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return store.New(cfg.DataFile), nil
}

// openLibrary builds the full resolve pipeline. The returned cleanup
// closes the cache and is safe to call unconditionally.
func (c *commandContext) openLibrary() (*library.Library, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	tmdbClient := services.NewTMDBClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.HTTPTimeout())

	var ratingSource resolver.RatingSource
	if cfg.OMDB.APIKey != "" {
		ratingSource = services.NewOMDBClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL, cfg.HTTPTimeout())
	}

	cleanup := func() {}
	var resolveCache library.ResolveCache
	if cfg.CachePath != "" {
		cch, err := cache.Open(cfg.CachePath)
		if err != nil {
			log.Printf("Warning: resolve cache unavailable: %v", err)
		} else {
			resolveCache = cch
			cleanup = func() {
				if err := cch.Close(); err != nil {
					log.Printf("Failed to close cache: %v", err)
				}
			}
		}
	}

	res := resolver.New(tmdbClient, ratingSource, cfg.MatchThreshold)
	return library.New(res, store.New(cfg.DataFile), resolveCache), cleanup, nil
}

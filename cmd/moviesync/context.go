package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"moviesync/internal/config"
	"moviesync/internal/engine"
	"moviesync/internal/fetch"
	"moviesync/internal/logging"
	"moviesync/internal/store"
	"moviesync/internal/tmdb"
)

// commandContext lazily loads configuration and wires the shared services a
// command needs. Config loads at most once per invocation.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
}

// openStore opens the database named by the config. The caller closes it.
func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.DatabasePath(), logger)
}

// newEngine builds the sync engine plus its store; the caller closes the
// store when the run finishes.
func (c *commandContext) newEngine() (*engine.Engine, *store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, nil, err
	}
	st, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithIncludeAdult(cfg.TMDB.IncludeAdult))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	fetcher := fetch.New(cfg.TMDB.Concurrency, cfg.TMDB.RatePerSec)
	return engine.New(st, client, fetcher, logger), st, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

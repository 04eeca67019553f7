package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"moviesync/internal/language"
	"moviesync/internal/naming"
)

// ErrMissingAPIKey reports that no TMDB credential could be found in the
// config file or the TMDB_API_KEY environment variable.
var ErrMissingAPIKey = errors.New("tmdb api key missing: set tmdb.api_key or TMDB_API_KEY")

func (c *Config) normalize() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		c.TMDB.APIKey = strings.TrimSpace(os.Getenv("TMDB_API_KEY"))
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")

	canonical, err := language.Canonical(c.TMDB.Language)
	if err != nil {
		return fmt.Errorf("tmdb language: %w", err)
	}
	c.TMDB.Language = canonical

	for _, field := range []*string{&c.Paths.DataDir, &c.Paths.OutputDir} {
		expanded, err := ExpandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

// Validate checks invariants that must hold before a sync run can start.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb base url must not be empty")
	}
	if c.TMDB.Concurrency <= 0 {
		return fmt.Errorf("tmdb concurrency must be positive, got %d", c.TMDB.Concurrency)
	}
	if c.TMDB.RatePerSec <= 0 {
		return fmt.Errorf("tmdb rate_per_sec must be positive, got %v", c.TMDB.RatePerSec)
	}
	pattern := naming.PatternID(c.Sync.Pattern)
	if pattern != naming.PatternAuto && !naming.Valid(pattern) {
		return fmt.Errorf("sync pattern %d is not a supported naming pattern", c.Sync.Pattern)
	}
	return nil
}

// Package config loads, normalizes, and validates moviesync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TMDB_API_KEY environment
// fallback. Always obtain settings through this package so downstream code
// receives sanitized paths, a canonical language code, and clear validation
// errors.
package config

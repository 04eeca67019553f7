// Package logging constructs the slog loggers used across moviesync.
//
// It provides console and JSON handler construction from config values,
// typed attribute helpers, a no-op logger for tests, and component child
// loggers so every subsystem tags its records consistently.
package logging

// Package language canonicalizes the result-language code sent to TMDB.
//
// Config values arrive in a few spellings ("en", "en_US", "en-us"); TMDB
// expects a BCP 47 tag like "en-US". Canonical parses and normalizes the
// value once at startup so the client never sends a malformed code.
package language

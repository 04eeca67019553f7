// Package tmdb provides the minimal TMDB API client used to resolve movie
// names and fetch metadata.
//
// It exposes movie search with an optional release-year filter and a detail
// lookup that appends credits so one call returns details, cast and crew.
// Detail payloads are returned as raw JSON; the metadata package owns their
// decomposition. Options allow tests to supply custom HTTP clients without
// modifying production code.
package tmdb

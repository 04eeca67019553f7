// Package metadata flattens the nested TMDB movie detail payload into a
// fixed set of typed relational tables.
//
// One raw response (details with credits appended) decomposes into eight
// tables: details, cast, crew, genres, spoken_languages, production_companies,
// production_countries and collection. Every row carries the owning TMDB id.
// Absent or null fields degrade to each type's zero value instead of failing
// the record; only a payload that is not the expected top-level shape is
// rejected outright.
package metadata

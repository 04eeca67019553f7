// Package store persists the input-to-id mapping and the normalized
// metadata cache in a single SQLite database.
//
// The mapping table keeps one row per distinct input ever seen; merge is
// idempotent and never touches manual overrides. Metadata tables are
// replace-by-id: re-fetching an id removes every prior row it owned across
// all tables before inserting the new rows, so stale and fresh rows never
// mix. A file lock beside the database enforces single-writer access, and
// every table can be exported to CSV for the flat-file layout the original
// tooling in this space uses.
package store

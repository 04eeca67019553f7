// Package resolve turns parsed movie names into TMDB ids.
//
// Resolution consults the persisted mapping first: a manual override is
// always authoritative and never triggers a network call, and a previously
// resolved id is reused unless the run is eager. Remaining inputs are
// searched remotely, optionally falling back to a title-only query, taking
// the highest-relevance result as authoritative. That choice is a heuristic;
// callers must expect occasional false positives and correct them through
// manual overrides. Failed lookups degrade to per-input outcomes so one bad
// name never aborts the batch.
package resolve

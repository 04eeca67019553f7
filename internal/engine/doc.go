// Package engine orchestrates a sync run end to end.
//
// A run moves through fixed stages: parse the inputs, merge them into the
// persisted mapping, resolve missing ids, fetch metadata for ids not yet
// cached, normalize and merge the results. Stages are strictly sequential;
// only the fetch stage issues work concurrently, and normalization waits for
// every fetch outcome before the store is touched. Per-item failures are
// collected alongside successes; the run itself fails only when no input
// could be parsed at all.
package engine

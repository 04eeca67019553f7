// Package naming extracts a release year and title from free-form movie
// folder names.
//
// A small set of anchored naming patterns is supported; each either matches
// the full input or rejects it, so partial hits never produce false
// candidates. When the caller does not know which convention a collection
// uses, AutoSelect runs every pattern over the whole batch and picks the one
// with the most matches, breaking ties toward the lowest pattern id.
package naming

package naming

import (
	"regexp"
	"sort"
)

// PatternID selects one of the supported folder naming conventions.
type PatternID int

const (
	// PatternAuto asks the parser to guess the convention from the batch.
	PatternAuto PatternID = -1
	// PatternYearTitle matches names like "1999 The Matrix".
	PatternYearTitle PatternID = 0
	// PatternYearDashTitle matches names like "2003 - The Matrix Reloaded".
	PatternYearDashTitle PatternID = 1
)

// NoYear marks a candidate whose pattern carries no year component.
const NoYear = -1

// Pattern 0 rejects titles that open with a dash so that dashed folder names
// only count as matches of pattern 1; otherwise auto-selection could never
// prefer the dashed convention.
var patterns = map[PatternID]*regexp.Regexp{
	PatternYearTitle:     regexp.MustCompile(`^(?P<year>\d{4}) (?P<title>[^-].*)$`),
	PatternYearDashTitle: regexp.MustCompile(`^(?P<year>\d{4}) - (?P<title>.+)$`),
}

// Patterns returns the supported pattern ids in ascending order.
func Patterns() []PatternID {
	ids := make([]PatternID, 0, len(patterns))
	for id := range patterns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Valid reports whether id names a supported concrete pattern.
// PatternAuto is a selector, not a pattern, and reports false.
func Valid(id PatternID) bool {
	_, ok := patterns[id]
	return ok
}

// Describe returns a short human-readable form of the pattern shape.
func Describe(id PatternID) string {
	switch id {
	case PatternYearTitle:
		return "YEAR TITLE"
	case PatternYearDashTitle:
		return "YEAR - TITLE"
	default:
		return "unknown"
	}
}

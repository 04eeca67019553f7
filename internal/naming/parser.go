package naming

import (
	"errors"
	"strconv"
	"strings"
)

// Candidate is the outcome of applying one pattern to one raw name.
type Candidate struct {
	Year    int
	Title   string
	Pattern PatternID
	Matched bool
}

// ErrNoPatternMatched reports that no supported pattern matched any input of
// a batch, so no pattern could be selected automatically.
var ErrNoPatternMatched = errors.New("no naming pattern matched any input")

// Parse applies a single pattern to raw. The match is anchored: the pattern
// must describe the entire string or the candidate reports Matched=false.
func Parse(raw string, id PatternID) Candidate {
	cand := Candidate{Year: NoYear, Pattern: id}
	re, ok := patterns[id]
	if !ok {
		return cand
	}
	match := re.FindStringSubmatch(raw)
	if match == nil {
		return cand
	}
	for i, name := range re.SubexpNames() {
		switch name {
		case "year":
			year, err := strconv.Atoi(match[i])
			if err == nil {
				cand.Year = year
			}
		case "title":
			cand.Title = strings.TrimSpace(match[i])
		}
	}
	cand.Matched = cand.Title != ""
	return cand
}

// MatchCounts runs every supported pattern over the batch and returns the
// number of full matches per pattern.
func MatchCounts(raws []string) map[PatternID]int {
	counts := make(map[PatternID]int, len(patterns))
	for _, id := range Patterns() {
		counts[id] = 0
		for _, raw := range raws {
			if Parse(raw, id).Matched {
				counts[id]++
			}
		}
	}
	return counts
}

// AutoSelect picks the pattern with the highest match count over the batch.
// Ties go to the lowest pattern id. When nothing matches at all it returns
// ErrNoPatternMatched instead of silently picking a pattern.
func AutoSelect(raws []string) (PatternID, error) {
	counts := MatchCounts(raws)
	best := PatternAuto
	bestCount := 0
	for _, id := range Patterns() {
		if counts[id] > bestCount {
			best = id
			bestCount = counts[id]
		}
	}
	if bestCount == 0 {
		return PatternAuto, ErrNoPatternMatched
	}
	return best, nil
}

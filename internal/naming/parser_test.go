package naming

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		pattern   PatternID
		wantMatch bool
		wantYear  int
		wantTitle string
	}{
		{
			name:      "year title",
			raw:       "1999 The Matrix",
			pattern:   PatternYearTitle,
			wantMatch: true,
			wantYear:  1999,
			wantTitle: "The Matrix",
		},
		{
			name:      "year dash title",
			raw:       "2003 - The Matrix Reloaded",
			pattern:   PatternYearDashTitle,
			wantMatch: true,
			wantYear:  2003,
			wantTitle: "The Matrix Reloaded",
		},
		{
			name:    "dashed form rejected by plain pattern",
			raw:     "2003 - The Matrix Reloaded",
			pattern: PatternYearTitle,
		},
		{
			name:    "plain form rejected by dashed pattern",
			raw:     "1999 The Matrix",
			pattern: PatternYearDashTitle,
		},
		{
			name:    "no year",
			raw:     "The Matrix",
			pattern: PatternYearTitle,
		},
		{
			name:    "year only",
			raw:     "1999",
			pattern: PatternYearTitle,
		},
		{
			name:    "anchored match rejects trailing garbage",
			raw:     "x 1999 The Matrix",
			pattern: PatternYearTitle,
		},
		{
			name:    "unknown pattern",
			raw:     "1999 The Matrix",
			pattern: PatternID(99),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cand := Parse(tc.raw, tc.pattern)
			if cand.Matched != tc.wantMatch {
				t.Fatalf("Matched = %v, want %v", cand.Matched, tc.wantMatch)
			}
			if !tc.wantMatch {
				if cand.Year != NoYear {
					t.Errorf("Year = %d, want NoYear on failed match", cand.Year)
				}
				return
			}
			if cand.Year != tc.wantYear {
				t.Errorf("Year = %d, want %d", cand.Year, tc.wantYear)
			}
			if cand.Title != tc.wantTitle {
				t.Errorf("Title = %q, want %q", cand.Title, tc.wantTitle)
			}
		})
	}
}

func TestAutoSelectPrefersMostMatches(t *testing.T) {
	id, err := AutoSelect([]string{
		"2003 - The Matrix Reloaded",
		"2003 - The Matrix Revolutions",
		"not a movie folder",
	})
	if err != nil {
		t.Fatalf("AutoSelect returned error: %v", err)
	}
	if id != PatternYearDashTitle {
		t.Fatalf("AutoSelect = %d, want %d", id, PatternYearDashTitle)
	}
}

func TestAutoSelectTieGoesToLowestID(t *testing.T) {
	// One plain and one dashed name give each pattern a single match, so the
	// tie must resolve to pattern 0.
	id, err := AutoSelect([]string{
		"1999 The Matrix",
		"2003 - The Matrix Reloaded",
	})
	if err != nil {
		t.Fatalf("AutoSelect returned error: %v", err)
	}
	if id != PatternYearTitle {
		t.Fatalf("AutoSelect = %d, want %d", id, PatternYearTitle)
	}
}

func TestAutoSelectPlainBatch(t *testing.T) {
	id, err := AutoSelect([]string{"1999 The Matrix", "2010 Inception"})
	if err != nil {
		t.Fatalf("AutoSelect returned error: %v", err)
	}
	if id != PatternYearTitle {
		t.Fatalf("AutoSelect = %d, want %d", id, PatternYearTitle)
	}
}

func TestAutoSelectNoMatches(t *testing.T) {
	_, err := AutoSelect([]string{"The Matrix", "Inception"})
	if !errors.Is(err, ErrNoPatternMatched) {
		t.Fatalf("AutoSelect error = %v, want ErrNoPatternMatched", err)
	}
}

func TestMatchCountsCoversEveryPattern(t *testing.T) {
	counts := MatchCounts([]string{"1999 The Matrix"})
	if len(counts) != len(Patterns()) {
		t.Fatalf("MatchCounts returned %d entries, want %d", len(counts), len(Patterns()))
	}
	if counts[PatternYearTitle] != 1 {
		t.Errorf("pattern 0 count = %d, want 1", counts[PatternYearTitle])
	}
	if counts[PatternYearDashTitle] != 0 {
		t.Errorf("pattern 1 count = %d, want 0", counts[PatternYearDashTitle])
	}
}

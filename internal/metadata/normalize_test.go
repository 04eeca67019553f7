package metadata

import (
	"errors"
	"testing"
)

const samplePayload = `{
	"id": 603,
	"adult": false,
	"backdrop_path": "/matrix_backdrop.jpg",
	"belongs_to_collection": {
		"id": 2344,
		"name": "The Matrix Collection",
		"poster_path": "/collection.jpg",
		"backdrop_path": null
	},
	"budget": 63000000,
	"genres": [
		{"id": 28, "name": "Action"},
		{"id": 878, "name": "Science Fiction"}
	],
	"homepage": null,
	"imdb_id": "tt0133093",
	"original_language": "en",
	"original_title": "The Matrix",
	"overview": "Set in the 22nd century...",
	"popularity": 85.1,
	"poster_path": "/matrix.jpg",
	"production_companies": [
		{"id": 79, "logo_path": "/wb.png", "name": "Village Roadshow Pictures", "origin_country": "US"}
	],
	"production_countries": [
		{"iso_3166_1": "US", "name": "United States of America"}
	],
	"release_date": "1999-03-30",
	"revenue": 463517383,
	"runtime": 136,
	"spoken_languages": [
		{"english_name": "English", "iso_639_1": "en", "name": "English"}
	],
	"status": "Released",
	"tagline": "Welcome to the Real World.",
	"title": "The Matrix",
	"video": false,
	"vote_average": 8.2,
	"vote_count": 24000,
	"credits": {
		"cast": [
			{"adult": false, "gender": 2, "id": 6384, "known_for_department": "Acting",
			 "name": "Keanu Reeves", "original_name": "Keanu Reeves", "popularity": 60.5,
			 "profile_path": "/keanu.jpg", "cast_id": 34, "character": "Neo",
			 "credit_id": "52fe425bc3a36847f80181c1", "order": 0}
		],
		"crew": [
			{"adult": false, "gender": 3, "id": 9339, "known_for_department": "Directing",
			 "name": "Lana Wachowski", "original_name": "Lana Wachowski", "popularity": 12.3,
			 "profile_path": null, "credit_id": "52fe425bc3a36847f8018201",
			 "department": "Directing", "job": "Director"}
		]
	}
}`

func TestNormalizeFullPayload(t *testing.T) {
	tables, err := Normalize(603, []byte(samplePayload))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if len(tables.Details) != 1 {
		t.Fatalf("details rows = %d, want 1", len(tables.Details))
	}
	details := tables.Details[0]
	if details.TMDBID != 603 {
		t.Errorf("details TMDBID = %d, want 603", details.TMDBID)
	}
	if details.Title != "The Matrix" || details.IMDBID != "tt0133093" {
		t.Errorf("details scalars wrong: %+v", details)
	}
	if details.ReleaseDate != "1999-03-30" {
		t.Errorf("ReleaseDate = %q, want 1999-03-30", details.ReleaseDate)
	}
	if details.Homepage != "" {
		t.Errorf("null homepage should coerce to empty, got %q", details.Homepage)
	}
	if details.Budget != 63000000 || details.Runtime != 136 {
		t.Errorf("numeric columns wrong: budget=%d runtime=%d", details.Budget, details.Runtime)
	}

	if len(tables.Collection) != 1 {
		t.Fatalf("collection rows = %d, want 1", len(tables.Collection))
	}
	if tables.Collection[0].CollectionID != 2344 || tables.Collection[0].BackdropPath != "" {
		t.Errorf("collection row wrong: %+v", tables.Collection[0])
	}

	if len(tables.Genres) != 2 {
		t.Fatalf("genre rows = %d, want 2", len(tables.Genres))
	}
	for _, genre := range tables.Genres {
		if genre.TMDBID != 603 {
			t.Errorf("genre row missing owning id: %+v", genre)
		}
	}

	if len(tables.Cast) != 1 || tables.Cast[0].Character != "Neo" {
		t.Fatalf("cast rows wrong: %+v", tables.Cast)
	}
	if len(tables.Crew) != 1 || tables.Crew[0].Job != "Director" {
		t.Fatalf("crew rows wrong: %+v", tables.Crew)
	}
	if len(tables.SpokenLanguages) != 1 || tables.SpokenLanguages[0].ISO639_1 != "en" {
		t.Fatalf("spoken language rows wrong: %+v", tables.SpokenLanguages)
	}
	if len(tables.ProductionCompanies) != 1 || tables.ProductionCompanies[0].CompanyID != 79 {
		t.Fatalf("production company rows wrong: %+v", tables.ProductionCompanies)
	}
	if len(tables.ProductionCountries) != 1 || tables.ProductionCountries[0].ISO3166_1 != "US" {
		t.Fatalf("production country rows wrong: %+v", tables.ProductionCountries)
	}
}

func TestNormalizeMissingOptionalSections(t *testing.T) {
	tables, err := Normalize(42, []byte(`{"id": 42, "title": "Bare"}`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(tables.Details) != 1 {
		t.Fatalf("details rows = %d, want 1", len(tables.Details))
	}
	if tables.Details[0].ReleaseDate != "" || tables.Details[0].Runtime != 0 {
		t.Errorf("absent fields should coerce to zero values: %+v", tables.Details[0])
	}
	if len(tables.Collection) != 0 {
		t.Errorf("collection rows = %d, want 0 when absent", len(tables.Collection))
	}
	if len(tables.Cast) != 0 || len(tables.Crew) != 0 {
		t.Errorf("credit rows should be empty without credits section")
	}
}

func TestNormalizeRejectsErrorPayload(t *testing.T) {
	// TMDB error documents carry status_code/status_message but no id.
	_, err := Normalize(7, []byte(`{"status_code":34,"status_message":"not found"}`))
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("error = %v, want ErrBadPayload", err)
	}
}

func TestNormalizeRejectsMalformedJSON(t *testing.T) {
	_, err := Normalize(7, []byte(`not json at all`))
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("error = %v, want ErrBadPayload", err)
	}
}

func TestNormalizeInvalidDateDegrades(t *testing.T) {
	tables, err := Normalize(7, []byte(`{"id":7,"release_date":"not-a-date"}`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if tables.Details[0].ReleaseDate != "" {
		t.Fatalf("invalid date should degrade to empty, got %q", tables.Details[0].ReleaseDate)
	}
}

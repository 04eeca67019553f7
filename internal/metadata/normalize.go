package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrBadPayload reports a response that is not the expected top-level shape
// (for example a TMDB error document). Such payloads yield zero rows.
var ErrBadPayload = errors.New("payload is not a movie detail document")

type detailPayload struct {
	ID                  *int64            `json:"id"`
	Adult               *bool             `json:"adult"`
	BackdropPath        *string           `json:"backdrop_path"`
	BelongsToCollection *collectionEntry  `json:"belongs_to_collection"`
	Budget              *int64            `json:"budget"`
	Genres              []genreEntry      `json:"genres"`
	Homepage            *string           `json:"homepage"`
	IMDBID              *string           `json:"imdb_id"`
	OriginalLanguage    *string           `json:"original_language"`
	OriginalTitle       *string           `json:"original_title"`
	Overview            *string           `json:"overview"`
	Popularity          *float64          `json:"popularity"`
	PosterPath          *string           `json:"poster_path"`
	ProductionCompanies []companyEntry    `json:"production_companies"`
	ProductionCountries []countryEntry    `json:"production_countries"`
	ReleaseDate         *string           `json:"release_date"`
	Revenue             *int64            `json:"revenue"`
	Runtime             *int64            `json:"runtime"`
	SpokenLanguages     []languageEntry   `json:"spoken_languages"`
	Status              *string           `json:"status"`
	Tagline             *string           `json:"tagline"`
	Title               *string           `json:"title"`
	Video               *bool             `json:"video"`
	VoteAverage         *float64          `json:"vote_average"`
	VoteCount           *int64            `json:"vote_count"`
	Credits             *creditsEntry     `json:"credits"`
}

type collectionEntry struct {
	ID           *int64  `json:"id"`
	Name         *string `json:"name"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
}

type genreEntry struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type companyEntry struct {
	ID            *int64  `json:"id"`
	LogoPath      *string `json:"logo_path"`
	Name          *string `json:"name"`
	OriginCountry *string `json:"origin_country"`
}

type countryEntry struct {
	ISO3166_1 *string `json:"iso_3166_1"`
	Name      *string `json:"name"`
}

type languageEntry struct {
	EnglishName *string `json:"english_name"`
	ISO639_1    *string `json:"iso_639_1"`
	Name        *string `json:"name"`
}

type creditsEntry struct {
	Cast []castEntry `json:"cast"`
	Crew []crewEntry `json:"crew"`
}

type castEntry struct {
	Adult              *bool    `json:"adult"`
	Gender             *int64   `json:"gender"`
	ID                 *int64   `json:"id"`
	KnownForDepartment *string  `json:"known_for_department"`
	Name               *string  `json:"name"`
	OriginalName       *string  `json:"original_name"`
	Popularity         *float64 `json:"popularity"`
	ProfilePath        *string  `json:"profile_path"`
	CastID             *int64   `json:"cast_id"`
	Character          *string  `json:"character"`
	CreditID           *string  `json:"credit_id"`
	Order              *int64   `json:"order"`
}

type crewEntry struct {
	Adult              *bool    `json:"adult"`
	Gender             *int64   `json:"gender"`
	ID                 *int64   `json:"id"`
	KnownForDepartment *string  `json:"known_for_department"`
	Name               *string  `json:"name"`
	OriginalName       *string  `json:"original_name"`
	Popularity         *float64 `json:"popularity"`
	ProfilePath        *string  `json:"profile_path"`
	CreditID           *string  `json:"credit_id"`
	Department         *string  `json:"department"`
	Job                *string  `json:"job"`
}

// Normalize decomposes one raw detail payload into the fixed table set, every
// row tagged with the owning id. Null and missing fields coerce to zero
// values; a payload without the expected top-level shape returns ErrBadPayload.
func Normalize(id int64, raw []byte) (*Tables, error) {
	var payload detailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if payload.ID == nil {
		return nil, fmt.Errorf("%w: missing id field", ErrBadPayload)
	}

	tables := &Tables{TMDBID: id}

	tables.Details = []Details{{
		TMDBID:           id,
		Adult:            boolVal(payload.Adult),
		BackdropPath:     strVal(payload.BackdropPath),
		Budget:           intVal(payload.Budget),
		Homepage:         strVal(payload.Homepage),
		IMDBID:           strVal(payload.IMDBID),
		OriginalLanguage: strVal(payload.OriginalLanguage),
		OriginalTitle:    strVal(payload.OriginalTitle),
		Overview:         strVal(payload.Overview),
		Popularity:       floatVal(payload.Popularity),
		PosterPath:       strVal(payload.PosterPath),
		ReleaseDate:      dateVal(payload.ReleaseDate),
		Revenue:          intVal(payload.Revenue),
		Runtime:          intVal(payload.Runtime),
		Status:           strVal(payload.Status),
		Tagline:          strVal(payload.Tagline),
		Title:            strVal(payload.Title),
		Video:            boolVal(payload.Video),
		VoteAverage:      floatVal(payload.VoteAverage),
		VoteCount:        intVal(payload.VoteCount),
	}}

	if c := payload.BelongsToCollection; c != nil {
		tables.Collection = []Collection{{
			TMDBID:       id,
			CollectionID: intVal(c.ID),
			Name:         strVal(c.Name),
			PosterPath:   strVal(c.PosterPath),
			BackdropPath: strVal(c.BackdropPath),
		}}
	}

	for _, g := range payload.Genres {
		tables.Genres = append(tables.Genres, Genre{
			TMDBID:  id,
			GenreID: intVal(g.ID),
			Name:    strVal(g.Name),
		})
	}

	for _, l := range payload.SpokenLanguages {
		tables.SpokenLanguages = append(tables.SpokenLanguages, SpokenLanguage{
			TMDBID:      id,
			EnglishName: strVal(l.EnglishName),
			ISO639_1:    strVal(l.ISO639_1),
			Name:        strVal(l.Name),
		})
	}

	for _, c := range payload.ProductionCompanies {
		tables.ProductionCompanies = append(tables.ProductionCompanies, ProductionCompany{
			TMDBID:        id,
			CompanyID:     intVal(c.ID),
			LogoPath:      strVal(c.LogoPath),
			Name:          strVal(c.Name),
			OriginCountry: strVal(c.OriginCountry),
		})
	}

	for _, c := range payload.ProductionCountries {
		tables.ProductionCountries = append(tables.ProductionCountries, ProductionCountry{
			TMDBID:    id,
			ISO3166_1: strVal(c.ISO3166_1),
			Name:      strVal(c.Name),
		})
	}

	if payload.Credits != nil {
		for _, m := range payload.Credits.Cast {
			tables.Cast = append(tables.Cast, CastMember{
				TMDBID:             id,
				Adult:              boolVal(m.Adult),
				Gender:             intVal(m.Gender),
				PersonID:           intVal(m.ID),
				KnownForDepartment: strVal(m.KnownForDepartment),
				Name:               strVal(m.Name),
				OriginalName:       strVal(m.OriginalName),
				Popularity:         floatVal(m.Popularity),
				ProfilePath:        strVal(m.ProfilePath),
				CastID:             intVal(m.CastID),
				Character:          strVal(m.Character),
				CreditID:           strVal(m.CreditID),
				Order:              intVal(m.Order),
			})
		}
		for _, m := range payload.Credits.Crew {
			tables.Crew = append(tables.Crew, CrewMember{
				TMDBID:             id,
				Adult:              boolVal(m.Adult),
				Gender:             intVal(m.Gender),
				PersonID:           intVal(m.ID),
				KnownForDepartment: strVal(m.KnownForDepartment),
				Name:               strVal(m.Name),
				OriginalName:       strVal(m.OriginalName),
				Popularity:         floatVal(m.Popularity),
				ProfilePath:        strVal(m.ProfilePath),
				CreditID:           strVal(m.CreditID),
				Department:         strVal(m.Department),
				Job:                strVal(m.Job),
			})
		}
	}

	return tables, nil
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func floatVal(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func boolVal(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

// dateVal validates the wire date format, degrading to empty on anything
// that does not parse as YYYY-MM-DD.
func dateVal(p *string) string {
	if p == nil || *p == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", *p); err != nil {
		return ""
	}
	return *p
}

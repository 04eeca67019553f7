package store

import (
	"context"
	"fmt"

	"moviesync/internal/metadata"
)

// DetailsRows returns every cached details row ordered by id.
func (s *Store) DetailsRows(ctx context.Context) ([]metadata.Details, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tmdb_id, adult, backdrop_path, budget, homepage, imdb_id,
                original_language, original_title, overview, popularity,
                poster_path, release_date, revenue, runtime, status, tagline,
                title, video, vote_average, vote_count
         FROM details ORDER BY tmdb_id`)
	if err != nil {
		return nil, fmt.Errorf("query details: %w", err)
	}
	defer rows.Close()

	var out []metadata.Details
	for rows.Next() {
		var r metadata.Details
		if err := rows.Scan(&r.TMDBID, &r.Adult, &r.BackdropPath, &r.Budget,
			&r.Homepage, &r.IMDBID, &r.OriginalLanguage, &r.OriginalTitle,
			&r.Overview, &r.Popularity, &r.PosterPath, &r.ReleaseDate,
			&r.Revenue, &r.Runtime, &r.Status, &r.Tagline, &r.Title,
			&r.Video, &r.VoteAverage, &r.VoteCount); err != nil {
			return nil, fmt.Errorf("scan details row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CastRows returns every cached cast row ordered by id and billing order.
func (s *Store) CastRows(ctx context.Context) ([]metadata.CastMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tmdb_id, adult, gender, person_id, known_for_department, name,
                original_name, popularity, profile_path, cast_id, character,
                credit_id, sort_order
         FROM cast_members ORDER BY tmdb_id, sort_order`)
	if err != nil {
		return nil, fmt.Errorf("query cast: %w", err)
	}
	defer rows.Close()

	var out []metadata.CastMember
	for rows.Next() {
		var r metadata.CastMember
		if err := rows.Scan(&r.TMDBID, &r.Adult, &r.Gender, &r.PersonID,
			&r.KnownForDepartment, &r.Name, &r.OriginalName, &r.Popularity,
			&r.ProfilePath, &r.CastID, &r.Character, &r.CreditID, &r.Order); err != nil {
			return nil, fmt.Errorf("scan cast row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CrewRows returns every cached crew row ordered by id.
func (s *Store) CrewRows(ctx context.Context) ([]metadata.CrewMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tmdb_id, adult, gender, person_id, known_for_department, name,
                original_name, popularity, profile_path, credit_id, department, job
         FROM crew_members ORDER BY tmdb_id, credit_id`)
	if err != nil {
		return nil, fmt.Errorf("query crew: %w", err)
	}
	defer rows.Close()

	var out []metadata.CrewMember
	for rows.Next() {
		var r metadata.CrewMember
		if err := rows.Scan(&r.TMDBID, &r.Adult, &r.Gender, &r.PersonID,
			&r.KnownForDepartment, &r.Name, &r.OriginalName, &r.Popularity,
			&r.ProfilePath, &r.CreditID, &r.Department, &r.Job); err != nil {
			return nil, fmt.Errorf("scan crew row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GenreRows returns every cached genre row ordered by id.
func (s *Store) GenreRows(ctx context.Context) ([]metadata.Genre, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tmdb_id, genre_id, name FROM genres ORDER BY tmdb_id, genre_id")
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var out []metadata.Genre
	for rows.Next() {
		var r metadata.Genre
		if err := rows.Scan(&r.TMDBID, &r.GenreID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SpokenLanguageRows returns every cached spoken-language row ordered by id.
func (s *Store) SpokenLanguageRows(ctx context.Context) ([]metadata.SpokenLanguage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tmdb_id, english_name, iso_639_1, name FROM spoken_languages ORDER BY tmdb_id, iso_639_1")
	if err != nil {
		return nil, fmt.Errorf("query spoken languages: %w", err)
	}
	defer rows.Close()

	var out []metadata.SpokenLanguage
	for rows.Next() {
		var r metadata.SpokenLanguage
		if err := rows.Scan(&r.TMDBID, &r.EnglishName, &r.ISO639_1, &r.Name); err != nil {
			return nil, fmt.Errorf("scan spoken language row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ProductionCompanyRows returns every cached production-company row ordered by id.
func (s *Store) ProductionCompanyRows(ctx context.Context) ([]metadata.ProductionCompany, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tmdb_id, company_id, logo_path, name, origin_country
         FROM production_companies ORDER BY tmdb_id, company_id`)
	if err != nil {
		return nil, fmt.Errorf("query production companies: %w", err)
	}
	defer rows.Close()

	var out []metadata.ProductionCompany
	for rows.Next() {
		var r metadata.ProductionCompany
		if err := rows.Scan(&r.TMDBID, &r.CompanyID, &r.LogoPath, &r.Name, &r.OriginCountry); err != nil {
			return nil, fmt.Errorf("scan production company row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ProductionCountryRows returns every cached production-country row ordered by id.
func (s *Store) ProductionCountryRows(ctx context.Context) ([]metadata.ProductionCountry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tmdb_id, iso_3166_1, name FROM production_countries ORDER BY tmdb_id, iso_3166_1")
	if err != nil {
		return nil, fmt.Errorf("query production countries: %w", err)
	}
	defer rows.Close()

	var out []metadata.ProductionCountry
	for rows.Next() {
		var r metadata.ProductionCountry
		if err := rows.Scan(&r.TMDBID, &r.ISO3166_1, &r.Name); err != nil {
			return nil, fmt.Errorf("scan production country row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CollectionRows returns every cached collection row ordered by id.
func (s *Store) CollectionRows(ctx context.Context) ([]metadata.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tmdb_id, collection_id, name, poster_path, backdrop_path FROM collection ORDER BY tmdb_id")
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	defer rows.Close()

	var out []metadata.Collection
	for rows.Next() {
		var r metadata.Collection
		if err := rows.Scan(&r.TMDBID, &r.CollectionID, &r.Name, &r.PosterPath, &r.BackdropPath); err != nil {
			return nil, fmt.Errorf("scan collection row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

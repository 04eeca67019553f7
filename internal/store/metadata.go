package store

import (
	"context"
	"fmt"

	"moviesync/internal/metadata"
)

// metadataTables maps SQL table names to their owning-id delete statements.
var metadataTables = []string{
	"details",
	"cast_members",
	"crew_members",
	"genres",
	"spoken_languages",
	"production_companies",
	"production_countries",
	"collection",
}

// CachedMetadataIDs returns the set of ids whose metadata is already
// materialized. An id counts as cached once its details row exists; a failed
// normalization leaves no rows anywhere and therefore stays uncached.
func (s *Store) CachedMetadataIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tmdb_id FROM details")
	if err != nil {
		return nil, fmt.Errorf("query cached ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan cached id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached ids: %w", err)
	}
	return ids, nil
}

// ReplaceMetadata removes every row owned by the tables' id across all
// metadata tables and inserts the new rows in one transaction. Ids not
// referenced by tables are untouched, so a re-fetch can never leave a mix of
// stale and fresh rows.
func (s *Store) ReplaceMetadata(ctx context.Context, tables *metadata.Tables) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin metadata replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range metadataTables {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE tmdb_id = ?", table), tables.TMDBID); err != nil {
			return fmt.Errorf("clear %s rows for id %d: %w", table, tables.TMDBID, err)
		}
	}

	for _, row := range tables.Details {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO details (
                tmdb_id, adult, backdrop_path, budget, homepage, imdb_id,
                original_language, original_title, overview, popularity,
                poster_path, release_date, revenue, runtime, status, tagline,
                title, video, vote_average, vote_count
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.TMDBID, row.Adult, row.BackdropPath, row.Budget, row.Homepage,
			row.IMDBID, row.OriginalLanguage, row.OriginalTitle, row.Overview,
			row.Popularity, row.PosterPath, row.ReleaseDate, row.Revenue,
			row.Runtime, row.Status, row.Tagline, row.Title, row.Video,
			row.VoteAverage, row.VoteCount)
		if err != nil {
			return fmt.Errorf("insert details row: %w", err)
		}
	}

	for _, row := range tables.Cast {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cast_members (
                tmdb_id, adult, gender, person_id, known_for_department, name,
                original_name, popularity, profile_path, cast_id, character,
                credit_id, sort_order
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.TMDBID, row.Adult, row.Gender, row.PersonID, row.KnownForDepartment,
			row.Name, row.OriginalName, row.Popularity, row.ProfilePath,
			row.CastID, row.Character, row.CreditID, row.Order)
		if err != nil {
			return fmt.Errorf("insert cast row: %w", err)
		}
	}

	for _, row := range tables.Crew {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO crew_members (
                tmdb_id, adult, gender, person_id, known_for_department, name,
                original_name, popularity, profile_path, credit_id, department, job
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.TMDBID, row.Adult, row.Gender, row.PersonID, row.KnownForDepartment,
			row.Name, row.OriginalName, row.Popularity, row.ProfilePath,
			row.CreditID, row.Department, row.Job)
		if err != nil {
			return fmt.Errorf("insert crew row: %w", err)
		}
	}

	for _, row := range tables.Genres {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO genres (tmdb_id, genre_id, name) VALUES (?, ?, ?)",
			row.TMDBID, row.GenreID, row.Name)
		if err != nil {
			return fmt.Errorf("insert genre row: %w", err)
		}
	}

	for _, row := range tables.SpokenLanguages {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO spoken_languages (tmdb_id, english_name, iso_639_1, name) VALUES (?, ?, ?, ?)",
			row.TMDBID, row.EnglishName, row.ISO639_1, row.Name)
		if err != nil {
			return fmt.Errorf("insert spoken language row: %w", err)
		}
	}

	for _, row := range tables.ProductionCompanies {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO production_companies (tmdb_id, company_id, logo_path, name, origin_country)
             VALUES (?, ?, ?, ?, ?)`,
			row.TMDBID, row.CompanyID, row.LogoPath, row.Name, row.OriginCountry)
		if err != nil {
			return fmt.Errorf("insert production company row: %w", err)
		}
	}

	for _, row := range tables.ProductionCountries {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO production_countries (tmdb_id, iso_3166_1, name) VALUES (?, ?, ?)",
			row.TMDBID, row.ISO3166_1, row.Name)
		if err != nil {
			return fmt.Errorf("insert production country row: %w", err)
		}
	}

	for _, row := range tables.Collection {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO collection (tmdb_id, collection_id, name, poster_path, backdrop_path)
             VALUES (?, ?, ?, ?, ?)`,
			row.TMDBID, row.CollectionID, row.Name, row.PosterPath, row.BackdropPath)
		if err != nil {
			return fmt.Errorf("insert collection row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit metadata replace: %w", err)
	}
	return nil
}

// ClearMetadata drops every cached metadata row while leaving the mapping
// intact, forcing a full re-fetch on the next run.
func (s *Store) ClearMetadata(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin metadata clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range metadataTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit metadata clear: %w", err)
	}
	return nil
}

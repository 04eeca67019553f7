package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ExportCSV writes the mapping and every non-empty metadata table as CSV
// files into dir, using the flat-file column naming the original tooling in
// this space established (list columns prefixed with their table name).
func (s *Store) ExportCSV(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := s.exportMapping(ctx, dir); err != nil {
		return err
	}

	exports := []func(context.Context, string) error{
		s.exportDetails,
		s.exportCast,
		s.exportCrew,
		s.exportGenres,
		s.exportSpokenLanguages,
		s.exportProductionCompanies,
		s.exportProductionCountries,
		s.exportCollection,
	}
	for _, export := range exports {
		if err := export(ctx, dir); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(dir, name string, header []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

func formatBool(v bool) string { return strconv.FormatBool(v) }

func (s *Store) exportMapping(ctx context.Context, dir string) error {
	records, err := s.Mapping(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.InputKey,
			rec.Title,
			strconv.Itoa(rec.Year),
			formatInt(rec.TMDBID),
			formatInt(rec.ManualID),
			rec.FirstSeen.UTC().Format(time.RFC3339),
		})
	}
	return writeCSV(dir, "mapping.csv",
		[]string{"input", "title", "year", "tmdb_id", "tmdb_id_man", "first_seen"}, rows)
}

func (s *Store) exportDetails(ctx context.Context, dir string) error {
	records, err := s.DetailsRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			formatInt(r.TMDBID), formatBool(r.Adult), r.BackdropPath,
			formatInt(r.Budget), r.Homepage, r.IMDBID, r.OriginalLanguage,
			r.OriginalTitle, r.Overview, formatFloat(r.Popularity),
			r.PosterPath, r.ReleaseDate, formatInt(r.Revenue),
			formatInt(r.Runtime), r.Status, r.Tagline, r.Title,
			formatBool(r.Video), formatFloat(r.VoteAverage), formatInt(r.VoteCount),
		})
	}
	return writeCSV(dir, "details.csv", []string{
		"tmdb_id", "adult", "backdrop_path", "budget", "homepage", "imdb_id",
		"original_language", "original_title", "overview", "popularity",
		"poster_path", "release_date", "revenue", "runtime", "status",
		"tagline", "title", "video", "vote_average", "vote_count",
	}, rows)
}

func (s *Store) exportCast(ctx context.Context, dir string) error {
	records, err := s.CastRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			formatInt(r.TMDBID), formatBool(r.Adult), formatInt(r.Gender),
			formatInt(r.PersonID), r.KnownForDepartment, r.Name, r.OriginalName,
			formatFloat(r.Popularity), r.ProfilePath, formatInt(r.CastID),
			r.Character, r.CreditID, formatInt(r.Order),
		})
	}
	return writeCSV(dir, "cast.csv", []string{
		"tmdb_id", "cast.adult", "cast.gender", "cast.id",
		"cast.known_for_department", "cast.name", "cast.original_name",
		"cast.popularity", "cast.profile_path", "cast.cast_id",
		"cast.character", "cast.credit_id", "cast.order",
	}, rows)
}

func (s *Store) exportCrew(ctx context.Context, dir string) error {
	records, err := s.CrewRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			formatInt(r.TMDBID), formatBool(r.Adult), formatInt(r.Gender),
			formatInt(r.PersonID), r.KnownForDepartment, r.Name, r.OriginalName,
			formatFloat(r.Popularity), r.ProfilePath, r.CreditID,
			r.Department, r.Job,
		})
	}
	return writeCSV(dir, "crew.csv", []string{
		"tmdb_id", "crew.adult", "crew.gender", "crew.id",
		"crew.known_for_department", "crew.name", "crew.original_name",
		"crew.popularity", "crew.profile_path", "crew.credit_id",
		"crew.department", "crew.job",
	}, rows)
}

func (s *Store) exportGenres(ctx context.Context, dir string) error {
	records, err := s.GenreRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{formatInt(r.TMDBID), formatInt(r.GenreID), r.Name})
	}
	return writeCSV(dir, "genres.csv",
		[]string{"tmdb_id", "genres.id", "genres.name"}, rows)
}

func (s *Store) exportSpokenLanguages(ctx context.Context, dir string) error {
	records, err := s.SpokenLanguageRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{formatInt(r.TMDBID), r.EnglishName, r.ISO639_1, r.Name})
	}
	return writeCSV(dir, "spoken_languages.csv", []string{
		"tmdb_id", "spoken_languages.english_name",
		"spoken_languages.iso_639_1", "spoken_languages.name",
	}, rows)
}

func (s *Store) exportProductionCompanies(ctx context.Context, dir string) error {
	records, err := s.ProductionCompanyRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			formatInt(r.TMDBID), formatInt(r.CompanyID), r.LogoPath, r.Name, r.OriginCountry,
		})
	}
	return writeCSV(dir, "production_companies.csv", []string{
		"tmdb_id", "production_companies.id", "production_companies.logo_path",
		"production_companies.name", "production_companies.origin_country",
	}, rows)
}

func (s *Store) exportProductionCountries(ctx context.Context, dir string) error {
	records, err := s.ProductionCountryRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{formatInt(r.TMDBID), r.ISO3166_1, r.Name})
	}
	return writeCSV(dir, "production_countries.csv", []string{
		"tmdb_id", "production_countries.iso_3166_1", "production_countries.name",
	}, rows)
}

func (s *Store) exportCollection(ctx context.Context, dir string) error {
	records, err := s.CollectionRows(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			formatInt(r.TMDBID), formatInt(r.CollectionID), r.Name, r.PosterPath, r.BackdropPath,
		})
	}
	return writeCSV(dir, "collection.csv", []string{
		"tmdb_id", "collection.id", "collection.name",
		"collection.poster_path", "collection.backdrop_path",
	}, rows)
}

package store

import (
	"context"
	"fmt"
	"time"

	"moviesync/internal/naming"
)

// MappingRecord is one row of the persisted input-to-id mapping.
type MappingRecord struct {
	InputKey  string
	Title     string
	Year      int
	TMDBID    int64
	ManualID  int64
	FirstSeen time.Time
}

// EffectiveID returns the id downstream metadata lookups should use: the
// manual override when set, otherwise the resolved id.
func (r MappingRecord) EffectiveID() int64 {
	if r.ManualID != IDDefault {
		return r.ManualID
	}
	return r.TMDBID
}

// NewMappingRecord builds a fresh record for a first-seen input.
func NewMappingRecord(inputKey string, cand naming.Candidate) MappingRecord {
	return MappingRecord{
		InputKey:  inputKey,
		Title:     cand.Title,
		Year:      cand.Year,
		TMDBID:    IDDefault,
		ManualID:  IDDefault,
		FirstSeen: time.Now().UTC(),
	}
}

// MergeMapping inserts every incoming record whose input key is not yet
// known. Existing rows are left untouched, including manual overrides, which
// makes the merge idempotent and commutative over input sets.
func (s *Store) MergeMapping(ctx context.Context, incoming []MappingRecord) error {
	if len(incoming) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mapping merge: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO mapping (input_key, title, year, tmdb_id, tmdb_id_man, first_seen)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(input_key) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("prepare mapping insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range incoming {
		firstSeen := rec.FirstSeen
		if firstSeen.IsZero() {
			firstSeen = time.Now().UTC()
		}
		_, err := stmt.ExecContext(ctx,
			rec.InputKey, rec.Title, rec.Year, rec.TMDBID, rec.ManualID,
			firstSeen.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("insert mapping row %q: %w", rec.InputKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mapping merge: %w", err)
	}
	return nil
}

// Mapping returns every mapping record ordered by input key.
func (s *Store) Mapping(ctx context.Context) ([]MappingRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT input_key, title, year, tmdb_id, tmdb_id_man, first_seen FROM mapping ORDER BY input_key")
	if err != nil {
		return nil, fmt.Errorf("query mapping: %w", err)
	}
	defer rows.Close()

	var records []MappingRecord
	for rows.Next() {
		var rec MappingRecord
		var firstSeen string
		if err := rows.Scan(&rec.InputKey, &rec.Title, &rec.Year, &rec.TMDBID, &rec.ManualID, &firstSeen); err != nil {
			return nil, fmt.Errorf("scan mapping row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, firstSeen); err == nil {
			rec.FirstSeen = parsed
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mapping rows: %w", err)
	}
	return records, nil
}

// SetResolvedID updates the resolved id for one input. Sentinel codes are
// persisted too so failed lookups are not repeated on the next run.
func (s *Store) SetResolvedID(ctx context.Context, inputKey string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE mapping SET tmdb_id = ? WHERE input_key = ?", id, inputKey)
	if err != nil {
		return fmt.Errorf("update resolved id: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolved id rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("input %q not present in mapping", inputKey)
	}
	return nil
}

// SetManualID records a user-supplied override for one input. The override
// always wins over the resolved id in downstream lookups.
func (s *Store) SetManualID(ctx context.Context, inputKey string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE mapping SET tmdb_id_man = ? WHERE input_key = ?", id, inputKey)
	if err != nil {
		return fmt.Errorf("update manual id: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("manual id rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("input %q not present in mapping", inputKey)
	}
	return nil
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"moviesync/internal/fetch"
	"moviesync/internal/logging"
	"moviesync/internal/metadata"
	"moviesync/internal/naming"
	"moviesync/internal/resolve"
	"moviesync/internal/store"
	"moviesync/internal/tmdb"
)

// ErrNoInputs reports a run that had nothing to work on: either the input
// batch was empty or no naming pattern matched any of its entries.
var ErrNoInputs = errors.New("no usable inputs")

// Options selects run-mode behaviour for a single sync.
type Options struct {
	// Pattern forces one naming convention; PatternAuto guesses from the batch.
	Pattern naming.PatternID
	// Strict disables the title-only fallback search.
	Strict bool
	// ForceIDUpdate re-resolves inputs that already carry a resolved id.
	ForceIDUpdate bool
	// ForceMetadataUpdate refetches metadata for ids already cached.
	ForceMetadataUpdate bool
}

// Stage names the pipeline step a per-item failure occurred in.
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageFetch     Stage = "fetch"
	StageNormalize Stage = "normalize"
)

// Failure records one item that did not make it through the run. The rest of
// the batch is unaffected.
type Failure struct {
	InputKey string
	TMDBID   int64
	Stage    Stage
	Err      error
}

// Result summarizes one completed sync run.
type Result struct {
	RunID    string
	Pattern  naming.PatternID
	Inputs   int
	Parsed   int
	Outcomes []resolve.Outcome
	// FetchedIDs are the ids whose metadata was fetched and merged this run.
	FetchedIDs []int64
	// CachedIDs counts ids skipped because their metadata was already present.
	CachedIDs int
	Failures  []Failure
	Stats     store.Stats
}

// Engine drives the sync pipeline against one store and one TMDB client.
type Engine struct {
	store    *store.Store
	searcher tmdb.Searcher
	fetcher  *fetch.Fetcher
	logger   *slog.Logger
}

// New creates an Engine. All network work flows through the given fetcher so
// search and detail requests share one rate ceiling.
func New(st *store.Store, searcher tmdb.Searcher, fetcher *fetch.Fetcher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		store:    st,
		searcher: searcher,
		fetcher:  fetcher,
		logger:   logging.NewComponentLogger(logger, "engine"),
	}
}

// SyncDir enumerates the immediate subdirectories of root and syncs their
// names as the input batch.
func (e *Engine) SyncDir(ctx context.Context, root string, opts Options) (*Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			inputs = append(inputs, entry.Name())
		}
	}
	return e.Sync(ctx, inputs, opts)
}

// Sync runs the full pipeline over the given raw names: parse, merge into the
// mapping, resolve missing ids, fetch uncached metadata, normalize and merge.
// Individual lookup or fetch failures are reported in the result; Sync itself
// fails only when nothing could be parsed or the store rejects an update.
func (e *Engine) Sync(ctx context.Context, inputs []string, opts Options) (*Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With(logging.String(logging.FieldRunID, runID))

	result := &Result{RunID: runID, Inputs: len(inputs)}

	pattern, incoming, err := e.parse(inputs, opts.Pattern, logger)
	if err != nil {
		return nil, err
	}
	result.Pattern = pattern
	result.Parsed = len(incoming)

	if err := e.store.MergeMapping(ctx, incoming); err != nil {
		return nil, err
	}

	if err := e.resolveIDs(ctx, opts, logger, result); err != nil {
		return nil, err
	}

	if err := e.syncMetadata(ctx, opts, logger, result); err != nil {
		return nil, err
	}

	stats, err := e.store.ReadStats(ctx)
	if err != nil {
		return nil, err
	}
	result.Stats = stats

	logger.Info("sync complete",
		logging.Int("inputs", result.Inputs),
		logging.Int("fetched", len(result.FetchedIDs)),
		logging.Int("cached", result.CachedIDs),
		logging.Int("failures", len(result.Failures)))
	return result, nil
}

// parse applies the selected pattern to the batch and builds the mapping
// records for inputs that matched. Unmatched inputs still enter the mapping,
// with an empty title, so their no-extract state is persisted.
func (e *Engine) parse(inputs []string, pattern naming.PatternID, logger *slog.Logger) (naming.PatternID, []store.MappingRecord, error) {
	if len(inputs) == 0 {
		return pattern, nil, fmt.Errorf("%w: empty batch", ErrNoInputs)
	}

	keys := make([]string, 0, len(inputs))
	for _, raw := range inputs {
		if key := strings.TrimSpace(raw); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return pattern, nil, fmt.Errorf("%w: empty batch", ErrNoInputs)
	}

	if pattern == naming.PatternAuto {
		selected, err := naming.AutoSelect(keys)
		if err != nil {
			return pattern, nil, fmt.Errorf("%w: %v", ErrNoInputs, err)
		}
		pattern = selected
		logger.Info("pattern selected", logging.String("pattern", naming.Describe(pattern)))
	} else if !naming.Valid(pattern) {
		return pattern, nil, fmt.Errorf("unknown naming pattern %d", pattern)
	}

	records := make([]store.MappingRecord, 0, len(keys))
	matched := 0
	for _, key := range keys {
		cand := naming.Parse(key, pattern)
		if cand.Matched {
			matched++
		}
		records = append(records, store.NewMappingRecord(key, cand))
	}
	if matched == 0 {
		return pattern, nil, fmt.Errorf("%w: pattern %q matched nothing", ErrNoInputs, naming.Describe(pattern))
	}
	return pattern, records, nil
}

// resolveIDs resolves every mapping record and persists newly resolved ids,
// sentinels included. Records decided by a manual override or a cached id are
// not rewritten.
func (e *Engine) resolveIDs(ctx context.Context, opts Options, logger *slog.Logger, result *Result) error {
	records, err := e.store.Mapping(ctx)
	if err != nil {
		return err
	}

	resolver := resolve.New(e.searcher, e.fetcher, resolve.Options{
		Strict: opts.Strict,
		Eager:  opts.ForceIDUpdate,
		Policy: e.fetcher.RetryPolicy(),
		Logger: logger,
	})
	outcomes := resolver.ResolveAll(ctx, records)
	result.Outcomes = outcomes

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			result.Failures = append(result.Failures, Failure{
				InputKey: outcome.InputKey,
				TMDBID:   outcome.ID,
				Stage:    StageResolve,
				Err:      outcome.Err,
			})
		}
		if outcome.Manual || outcome.FromCache {
			continue
		}
		if err := e.store.SetResolvedID(ctx, outcome.InputKey, outcome.ID); err != nil {
			return err
		}
	}
	return nil
}

// syncMetadata fetches details for every effective id without cached
// metadata, then normalizes and merges the payloads one id at a time.
// Normalization starts only after the whole fetch stage has drained.
func (e *Engine) syncMetadata(ctx context.Context, opts Options, logger *slog.Logger, result *Result) error {
	ids, cached, err := e.pendingIDs(ctx, opts.ForceMetadataUpdate)
	if err != nil {
		return err
	}
	result.CachedIDs = cached
	if len(ids) == 0 {
		return nil
	}
	logger.Info("fetching metadata",
		logging.Int("ids", len(ids)),
		logging.Int("cached", cached))

	payloads := fetch.Map(ctx, e.fetcher, ids, func(ctx context.Context, id int64) ([]byte, error) {
		return e.searcher.MovieDetails(ctx, id)
	})

	for i, payload := range payloads {
		id := ids[i]
		if payload.Err != nil {
			result.Failures = append(result.Failures, Failure{
				TMDBID: id,
				Stage:  StageFetch,
				Err:    payload.Err,
			})
			logger.Warn("metadata fetch failed",
				logging.Int64("tmdb_id", id),
				logging.Error(payload.Err))
			continue
		}
		tables, err := metadata.Normalize(id, payload.Value)
		if err != nil {
			result.Failures = append(result.Failures, Failure{
				TMDBID: id,
				Stage:  StageNormalize,
				Err:    err,
			})
			logger.Warn("metadata normalize failed",
				logging.Int64("tmdb_id", id),
				logging.Error(err))
			continue
		}
		if err := e.store.ReplaceMetadata(ctx, tables); err != nil {
			return err
		}
		result.FetchedIDs = append(result.FetchedIDs, id)
	}
	return nil
}

// pendingIDs computes the set of ids to fetch this run: every effective id in
// the mapping, manual overrides included, minus sentinels and minus ids whose
// metadata is already cached unless force is set. Also returns how many ids
// were skipped as cached.
func (e *Engine) pendingIDs(ctx context.Context, force bool) ([]int64, int, error) {
	records, err := e.store.Mapping(ctx)
	if err != nil {
		return nil, 0, err
	}

	wanted := make(map[int64]struct{})
	for _, rec := range records {
		// Both columns feed the lookup set: a manual override does not erase
		// the resolved id's cache entry, and either may be current.
		for _, id := range []int64{rec.TMDBID, rec.ManualID} {
			if !store.IsSentinel(id) {
				wanted[id] = struct{}{}
			}
		}
	}

	cached := map[int64]struct{}{}
	if !force {
		cached, err = e.store.CachedMetadataIDs(ctx)
		if err != nil {
			return nil, 0, err
		}
	}

	skipped := 0
	ids := make([]int64, 0, len(wanted))
	for id := range wanted {
		if _, ok := cached[id]; ok {
			skipped++
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, skipped, nil
}

// Write exports the mapping and every populated metadata table to CSV files
// under dir.
func (e *Engine) Write(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return e.store.ExportCSV(ctx, dir)
}

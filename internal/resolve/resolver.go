package resolve

import (
	"context"
	"errors"
	"log/slog"

	"moviesync/internal/fetch"
	"moviesync/internal/logging"
	"moviesync/internal/naming"
	"moviesync/internal/store"
	"moviesync/internal/tmdb"
)

// Options controls run-mode behaviour of a Resolver.
type Options struct {
	// Strict disables the title-only fallback search.
	Strict bool
	// Eager re-resolves inputs that already carry a resolved id.
	Eager bool
	// Policy bounds per-request retry. Zero value uses fetch.DefaultPolicy.
	Policy fetch.Policy
	Logger *slog.Logger
}

// Resolver resolves mapping records to TMDB ids.
type Resolver struct {
	searcher tmdb.Searcher
	fetcher  *fetch.Fetcher
	opts     Options
	logger   *slog.Logger
}

// Outcome is the resolution result for one input.
type Outcome struct {
	InputKey   string
	ID         int64
	FirstPass  int64
	SecondPass int64
	// Manual reports that a user-supplied override decided the id.
	Manual bool
	// FromCache reports that a previously resolved id was reused.
	FromCache bool
	// Err is set when the lookup failed after retries. The id then stays at
	// its sentinel so the next run retries automatically.
	Err error
}

// New creates a Resolver issuing searches through the given fetcher.
func New(searcher tmdb.Searcher, fetcher *fetch.Fetcher, opts Options) *Resolver {
	if opts.Policy.MaxAttempts == 0 {
		opts.Policy = fetch.DefaultPolicy
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		searcher: searcher,
		fetcher:  fetcher,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "resolve"),
	}
}

// ResolveAll resolves every record concurrently under the fetcher's bounds
// and returns one outcome per record in input order.
func (r *Resolver) ResolveAll(ctx context.Context, records []store.MappingRecord) []Outcome {
	results := fetch.Map(ctx, r.fetcher, records, func(ctx context.Context, rec store.MappingRecord) (Outcome, error) {
		// Per-search retry happens inside resolveOne; returning a nil error
		// here keeps the pool from re-running a whole multi-pass resolution.
		return r.resolveOne(ctx, rec), nil
	})
	outcomes := make([]Outcome, len(results))
	for i, res := range results {
		outcomes[i] = res.Value
		if res.Err != nil && outcomes[i].Err == nil {
			outcomes[i].InputKey = records[i].InputKey
			outcomes[i].Err = res.Err
		}
	}
	return outcomes
}

func (r *Resolver) resolveOne(ctx context.Context, rec store.MappingRecord) Outcome {
	outcome := Outcome{
		InputKey:   rec.InputKey,
		ID:         store.IDDefault,
		FirstPass:  store.IDDefault,
		SecondPass: store.IDDefault,
	}

	// Manual override is sticky and authoritative; no network call even when
	// the resolved id is stale or absent.
	if rec.ManualID != store.IDDefault {
		outcome.ID = rec.ManualID
		outcome.Manual = true
		return outcome
	}

	if rec.TMDBID != store.IDDefault && !r.opts.Eager {
		outcome.ID = rec.TMDBID
		outcome.FromCache = true
		return outcome
	}

	if rec.Title == "" {
		outcome.ID = store.IDNoExtract
		return outcome
	}

	first, err := r.search(ctx, rec.Title, rec.Year)
	if err != nil {
		return r.failedOutcome(outcome, rec, err)
	}
	outcome.FirstPass = first
	outcome.ID = first

	if first != store.IDNoResult {
		return outcome
	}
	if r.opts.Strict || rec.Year == naming.NoYear {
		// No fallback: the miss is persisted as a sentinel; an eager run is
		// the documented way to retry it.
		return outcome
	}

	second, err := r.search(ctx, rec.Title, naming.NoYear)
	if err != nil {
		return r.failedOutcome(outcome, rec, err)
	}
	outcome.SecondPass = second
	outcome.ID = second
	return outcome
}

// search returns the highest-relevance match for the query, IDNoResult when
// the search came back empty.
func (r *Resolver) search(ctx context.Context, title string, year int) (int64, error) {
	searchYear := 0
	if year != naming.NoYear {
		searchYear = year
	}
	resp, err := fetch.Retry(ctx, r.opts.Policy, func(ctx context.Context) (*tmdb.SearchResponse, error) {
		return r.searcher.SearchMovie(ctx, title, searchYear)
	})
	if err != nil {
		return store.IDDefault, err
	}
	if len(resp.Results) == 0 {
		return store.IDNoResult, nil
	}
	return resp.Results[0].ID, nil
}

// failedOutcome classifies a lookup error. Permanent rejections from the
// service persist as the bad-response sentinel; transient exhaustion leaves
// the id unset so the next run retries.
func (r *Resolver) failedOutcome(outcome Outcome, rec store.MappingRecord, err error) Outcome {
	outcome.Err = err

	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) && !fetch.IsRetriable(err) {
		outcome.ID = store.IDBadResponse
	} else {
		outcome.ID = store.IDDefault
	}

	r.logger.Warn("lookup failed",
		logging.String("input", rec.InputKey),
		logging.Int64("tmdb_id", outcome.ID),
		logging.Error(err))
	return outcome
}

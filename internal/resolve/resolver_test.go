package resolve

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"moviesync/internal/fetch"
	"moviesync/internal/naming"
	"moviesync/internal/store"
	"moviesync/internal/tmdb"
)

type fakeSearcher struct {
	mu      sync.Mutex
	calls   []searchCall
	results map[string][]tmdb.Result
	err     error
}

type searchCall struct {
	query string
	year  int
}

func (f *fakeSearcher) SearchMovie(ctx context.Context, query string, year int) (*tmdb.SearchResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, searchCall{query: query, year: year})
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	results := f.results[query]
	if year > 0 {
		// Year-filtered results only exist when the fixture registered them
		// under the "query@year" key.
		results = f.results[queryKey(query, year)]
	}
	return &tmdb.SearchResponse{Results: results}, nil
}

func (f *fakeSearcher) MovieDetails(ctx context.Context, movieID int64) ([]byte, error) {
	return nil, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func queryKey(query string, year int) string {
	return query + "@" + strconv.Itoa(year)
}

func fastPolicy() fetch.Policy {
	return fetch.Policy{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
}

func newResolver(s tmdb.Searcher, opts Options) *Resolver {
	opts.Policy = fastPolicy()
	return New(s, fetch.New(4, 100000), opts)
}

func record(inputKey, title string, year int, resolved, manual int64) store.MappingRecord {
	return store.MappingRecord{
		InputKey: inputKey,
		Title:    title,
		Year:     year,
		TMDBID:   resolved,
		ManualID: manual,
	}
}

func TestManualOverrideSkipsNetwork(t *testing.T) {
	searcher := &fakeSearcher{}
	resolver := newResolver(searcher, Options{})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, store.IDNoResult, 603),
	})

	if searcher.callCount() != 0 {
		t.Fatalf("manual override triggered %d network calls, want 0", searcher.callCount())
	}
	if outcomes[0].ID != 603 || !outcomes[0].Manual {
		t.Fatalf("outcome = %+v, want manual id 603", outcomes[0])
	}
}

func TestCachedIDSkipsNetwork(t *testing.T) {
	searcher := &fakeSearcher{}
	resolver := newResolver(searcher, Options{})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, 603, store.IDDefault),
	})

	if searcher.callCount() != 0 {
		t.Fatalf("cached id triggered %d network calls, want 0", searcher.callCount())
	}
	if outcomes[0].ID != 603 || !outcomes[0].FromCache {
		t.Fatalf("outcome = %+v, want cached id 603", outcomes[0])
	}
}

func TestEagerModeReResolves(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]tmdb.Result{
		queryKey("The Matrix", 1999): {{ID: 603, Title: "The Matrix"}},
	}}
	resolver := newResolver(searcher, Options{Eager: true})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, 999, store.IDDefault),
	})

	if searcher.callCount() != 1 {
		t.Fatalf("eager mode made %d calls, want 1", searcher.callCount())
	}
	if outcomes[0].ID != 603 {
		t.Fatalf("outcome id = %d, want re-resolved 603", outcomes[0].ID)
	}
}

func TestFirstPassHit(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]tmdb.Result{
		queryKey("The Matrix", 1999): {{ID: 603, Title: "The Matrix"}, {ID: 604, Title: "Other"}},
	}}
	resolver := newResolver(searcher, Options{})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, store.IDDefault, store.IDDefault),
	})

	out := outcomes[0]
	if out.ID != 603 || out.FirstPass != 603 {
		t.Fatalf("outcome = %+v, want first-pass 603", out)
	}
	if out.SecondPass != store.IDDefault {
		t.Fatalf("second pass ran unnecessarily: %+v", out)
	}
}

func TestTitleOnlyFallback(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]tmdb.Result{
		// Nothing under the year-filtered key, a hit on the bare title.
		"The Matrix": {{ID: 603, Title: "The Matrix"}},
	}}
	resolver := newResolver(searcher, Options{})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, store.IDDefault, store.IDDefault),
	})

	out := outcomes[0]
	if searcher.callCount() != 2 {
		t.Fatalf("fallback made %d calls, want 2", searcher.callCount())
	}
	if out.FirstPass != store.IDNoResult || out.SecondPass != 603 || out.ID != 603 {
		t.Fatalf("outcome = %+v, want fallback hit 603", out)
	}
}

func TestStrictModeSkipsFallback(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]tmdb.Result{
		"The Matrix": {{ID: 603, Title: "The Matrix"}},
	}}
	resolver := newResolver(searcher, Options{Strict: true})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, store.IDDefault, store.IDDefault),
	})

	out := outcomes[0]
	if searcher.callCount() != 1 {
		t.Fatalf("strict mode made %d calls, want 1", searcher.callCount())
	}
	if out.ID != store.IDNoResult {
		t.Fatalf("outcome id = %d, want not-found sentinel", out.ID)
	}
}

func TestUnparsedInputGetsExtractSentinel(t *testing.T) {
	searcher := &fakeSearcher{}
	resolver := newResolver(searcher, Options{})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("not a movie", "", naming.NoYear, store.IDDefault, store.IDDefault),
	})

	if searcher.callCount() != 0 {
		t.Fatal("unparsed input should not hit the network")
	}
	if outcomes[0].ID != store.IDNoExtract {
		t.Fatalf("outcome id = %d, want no-extract sentinel", outcomes[0].ID)
	}
}

func TestPermanentFailurePersistsBadResponse(t *testing.T) {
	searcher := &fakeSearcher{err: &fetch.StatusError{Code: http.StatusUnauthorized}}
	resolver := newResolver(searcher, Options{})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, store.IDDefault, store.IDDefault),
	})

	out := outcomes[0]
	if out.Err == nil {
		t.Fatal("outcome should carry the lookup error")
	}
	if out.ID != store.IDBadResponse {
		t.Fatalf("outcome id = %d, want bad-response sentinel", out.ID)
	}
}

func TestTransientFailureLeavesIDUnset(t *testing.T) {
	searcher := &fakeSearcher{err: &fetch.StatusError{Code: http.StatusServiceUnavailable}}
	resolver := newResolver(searcher, Options{})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, store.IDDefault, store.IDDefault),
	})

	out := outcomes[0]
	if out.Err == nil {
		t.Fatal("outcome should carry the lookup error")
	}
	if out.ID != store.IDDefault {
		t.Fatalf("outcome id = %d, want default so the next run retries", out.ID)
	}
}

func TestFailureIsolation(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]tmdb.Result{
		queryKey("Inception", 2010): {{ID: 27205, Title: "Inception"}},
	}}
	resolver := newResolver(searcher, Options{Strict: true})

	outcomes := resolver.ResolveAll(context.Background(), []store.MappingRecord{
		record("1999 The Matrix", "The Matrix", 1999, store.IDDefault, store.IDDefault),
		record("2010 Inception", "Inception", 2010, store.IDDefault, store.IDDefault),
	})

	if outcomes[0].ID != store.IDNoResult {
		t.Fatalf("miss outcome = %+v, want not-found sentinel", outcomes[0])
	}
	if outcomes[1].ID != 27205 {
		t.Fatalf("hit outcome = %+v, want 27205 despite sibling miss", outcomes[1])
	}
}

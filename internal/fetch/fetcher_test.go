package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func fastPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func TestMapBoundedConcurrencyAndOrder(t *testing.T) {
	const total = 100
	const limit = 10

	fetcher := New(limit, 100000).WithPolicy(fastPolicy())

	var inFlight atomic.Int64
	var peak atomic.Int64

	items := make([]int, total)
	for i := range items {
		items[i] = i
	}

	results := Map(context.Background(), fetcher, items, func(ctx context.Context, item int) (int, error) {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return item * 2, nil
	})

	if len(results) != total {
		t.Fatalf("got %d results, want %d", len(results), total)
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("item %d failed: %v", i, res.Err)
		}
		if res.Value != i*2 {
			t.Fatalf("result %d = %d, want %d (submission order lost)", i, res.Value, i*2)
		}
	}
	if peak.Load() > limit {
		t.Fatalf("peak in-flight = %d, want <= %d", peak.Load(), limit)
	}
}

func TestMapIsolatesFailures(t *testing.T) {
	fetcher := New(4, 100000).WithPolicy(fastPolicy())

	items := []int{0, 1, 2, 3}
	results := Map(context.Background(), fetcher, items, func(ctx context.Context, item int) (string, error) {
		if item == 2 {
			return "", &StatusError{Code: http.StatusNotFound}
		}
		return fmt.Sprintf("ok-%d", item), nil
	})

	for i, res := range results {
		if i == 2 {
			if res.Err == nil {
				t.Fatal("item 2 should have failed")
			}
			continue
		}
		if res.Err != nil {
			t.Fatalf("item %d failed alongside item 2: %v", i, res.Err)
		}
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	var calls atomic.Int64
	value, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		if calls.Add(1) < 3 {
			return "", &StatusError{Code: http.StatusServiceUnavailable}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if value != "ok" {
		t.Fatalf("Retry value = %q, want ok", value)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
}

func TestRetryStopsOnPermanentFailure(t *testing.T) {
	var calls atomic.Int64
	_, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", &StatusError{Code: http.StatusNotFound}
	})
	if err == nil {
		t.Fatal("Retry should propagate the permanent failure")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on 4xx)", calls.Load())
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	var calls atomic.Int64
	_, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", &StatusError{Code: http.StatusTooManyRequests}
	})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Retry error = %v, want StatusError", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3 (attempt bound)", calls.Load())
	}
}

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limit", err: &StatusError{Code: 429}, want: true},
		{name: "server error", err: &StatusError{Code: 503}, want: true},
		{name: "not found", err: &StatusError{Code: 404}, want: false},
		{name: "unauthorized", err: &StatusError{Code: 401}, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetriable(tc.err); got != tc.want {
				t.Fatalf("IsRetriable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestMapCancelledContext(t *testing.T) {
	fetcher := New(2, 100000).WithPolicy(fastPolicy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Map(ctx, fetcher, []int{1, 2, 3}, func(ctx context.Context, item int) (int, error) {
		return item, nil
	})
	// Workers may or may not have been admitted before cancellation; the only
	// requirement is that Map returns one outcome per item.
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
}

package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Fetcher issues work under a global concurrency bound and request-rate
// ceiling. The zero value is not usable; construct with New.
type Fetcher struct {
	limit   int
	limiter *rate.Limiter
	policy  Policy
}

// New creates a Fetcher with the given in-flight limit and sustained
// requests-per-second rate. Non-positive values fall back to conservative
// defaults.
func New(limit int, perSecond float64) *Fetcher {
	if limit <= 0 {
		limit = 10
	}
	if perSecond <= 0 {
		perSecond = 10
	}
	return &Fetcher{
		limit:   limit,
		limiter: rate.NewLimiter(rate.Limit(perSecond), limit),
		policy:  DefaultPolicy,
	}
}

// WithPolicy returns a copy of the fetcher using the given retry policy.
func (f *Fetcher) WithPolicy(policy Policy) *Fetcher {
	clone := *f
	clone.policy = policy
	return &clone
}

// RetryPolicy returns the policy the fetcher applies to each request.
func (f *Fetcher) RetryPolicy() Policy {
	return f.policy
}

// Outcome pairs one request's result with its error, in submission order.
type Outcome[R any] struct {
	Value R
	Err   error
}

// Map runs fn for every item concurrently, bounded by the fetcher's limits,
// and returns one outcome per item in submission order. Each call is retried
// per the fetcher's policy; an exhausted item fails alone. Completion order
// is unspecified, result order is not.
func Map[T, R any](ctx context.Context, f *Fetcher, items []T, fn func(ctx context.Context, item T) (R, error)) []Outcome[R] {
	results := make([]Outcome[R], len(items))
	if len(items) == 0 {
		return results
	}

	sem := make(chan struct{}, f.limit)
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return
			}
			value, err := Retry(ctx, f.policy, func(ctx context.Context) (R, error) {
				if err := f.limiter.Wait(ctx); err != nil {
					var zero R
					return zero, err
				}
				return fn(ctx, items[i])
			})
			results[i] = Outcome[R]{Value: value, Err: err}
		}(i)
	}
	wg.Wait()
	return results
}

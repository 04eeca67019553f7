// Package fetch runs remote calls under a shared concurrency and rate
// ceiling with bounded retry.
//
// Fetcher executes a batch of calls concurrently while keeping results in
// submission order, so callers can correlate outcomes with inputs without
// caring about completion order. Retry distinguishes transient conditions
// (timeouts, 5xx, rate limits) from permanent ones; a request that exhausts
// its retries fails alone and never aborts its siblings.
package fetch

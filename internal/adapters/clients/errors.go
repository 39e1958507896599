// Package clients provides the instrumented HTTP client used by downstream
// adapters such as the postal code lookup.
package clients

import "errors"

// Transport-level failures. Adapters translate them into domain errors.
var (
	// ErrCircuitOpen means the downstream service is being skipped after
	// repeated failures.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error once every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

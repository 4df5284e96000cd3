// Package resilient implements the remote-then-fallback strategy shared by
// the prediction and analytics paths: try the remote source, and when the
// call fails or returns a degraded payload, compute a local substitute.
// The local function is expected to be pure so it stays unit-testable
// without any transport.
package resilient

import "context"

// Lookup resolves a value remote-first. The degraded predicate marks a
// remote payload that technically arrived but must not be trusted (the ML
// service tags its own canned responses). The returned bool reports
// whether the local fallback was used.
func Lookup[T any](
	ctx context.Context,
	remote func(context.Context) (T, error),
	degraded func(T) bool,
	local func() T,
) (T, bool) {
	value, err := remote(ctx)
	if err != nil {
		return local(), true
	}
	if degraded != nil && degraded(value) {
		return local(), true
	}
	return value, false
}

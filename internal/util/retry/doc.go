// Package retry retries AWS control-plane calls that fail transiently.
//
// [WithExponentialBackoff] retries an operation with bounded attempts and a
// growing delay. Errors wrapped with [Fatal], or rejected by a [WithRetryIf]
// predicate, stop the loop immediately.
package retry

package syncclient

import "errors"

// Sentinel errors produced by Client. Callers branch with [errors.Is].
var (
	// ErrNetwork is returned when the underlying HTTP request itself fails
	// (DNS, connection refused, timeout, TLS) — distinct from a non-2xx
	// response, which is ErrRemote.
	ErrNetwork = errors.New("syncclient: network failure")

	// ErrRemote wraps a non-2xx HTTP response. When the body carries an
	// errors array, errors[0] is surfaced verbatim; otherwise the status
	// code and raw body are.
	ErrRemote = errors.New("syncclient: remote error")
)

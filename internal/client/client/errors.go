package client

import (
	"errors"
)

var (
	// ErrUnavailable covers network failures, timeouts and server-side faults.
	// The caller may retry.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the principal's token was rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSchemaMismatch means the server cannot serve an incremental pull for
	// the requested schema version.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// IsRetryable reports whether a later attempt may succeed without any change
// on the client.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Package backend defines the contract every screen of the application
// talks to: one store interface per entity, the input/patch shapes the
// stores accept, and the error taxonomy both the local and the remote
// adapter report through.
package backend

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested identifier does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAuthExpired indicates the remote service rejected the session
// credential. The session has already been cleared when this is seen.
var ErrAuthExpired = errors.New("session expired")

// ErrDeferred is returned by mutating remote calls that could not reach
// the service and were written to the offline queue instead. It is an
// acceptance, not a failure: the mutation will be replayed when
// connectivity returns, and the UI should show "saved, pending sync".
var ErrDeferred = errors.New("request queued for replay")

// ErrNotAvailableLocally indicates a remote-only feature was invoked
// while running against the embedded store.
var ErrNotAvailableLocally = errors.New("not available in local mode")

// ValidationError reports malformed input. It is surfaced immediately
// and never queued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteError is a non-2xx response from the remote service on a call
// that did reach it.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote service returned HTTP %d", e.StatusCode)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDeferred reports whether a mutating call was accepted into the
// offline queue rather than delivered.
func IsDeferred(err error) bool { return errors.Is(err, ErrDeferred) }

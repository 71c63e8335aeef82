package client

import (
	"errors"
	"fmt"
)

// Sentinel errors carry the exact messages the console displays, so callers
// can surface err.Error() directly.
var (
	// ErrNotFound maps HTTP 404 on single-question operations.
	ErrNotFound = errors.New("Question not found")

	// ErrForbidden maps HTTP 403 on mutating operations.
	ErrForbidden = errors.New("Forbidden: Admin access required")

	// ErrTokenUnavailable is returned by mutating operations invoked without
	// a token. No request is issued in that case.
	ErrTokenUnavailable = errors.New("Authentication token not available")
)

// StatusError is returned for any non-success HTTP status that has no more
// specific mapping. It carries the status code and the raw response body.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to %s: %d %s", e.Op, e.Status, e.Body)
}

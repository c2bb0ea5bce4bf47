package remote

import (
	"errors"
	"fmt"
)

// ErrNoCredentials is returned when an operation requires authentication
// and no credential source produced one. The invoker short-circuits
// without making a network call, so callers can distinguish "not logged
// in" from a server-rejected request.
var ErrNoCredentials = errors.New("remote: no admin authentication available")

// OperationError is a server-side rejection: a non-2xx status or an
// envelope carrying ok=false.
type OperationError struct {
	Operation string
	Status    int
	Message   string
}

func (e *OperationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote: operation %s failed (status %d): %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("remote: operation %s failed (status %d)", e.Operation, e.Status)
}

// TransportError wraps network-level failures (DNS, refused connection,
// context cancellation) so they stay distinguishable from rejections.
type TransportError struct {
	Operation string
	Cause     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote: operation %s transport failure: %v", e.Operation, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

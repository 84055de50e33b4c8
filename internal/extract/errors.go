package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout means the completion call exceeded its deadline.
	ErrTimeout = errors.New("completion request timed out")
	// ErrUpstreamFormat means the endpoint answered but without a usable
	// completion body.
	ErrUpstreamFormat = errors.New("completion response missing usable content")
)

// TransportError wraps an HTTP or API-level failure from the completion
// endpoint. The caller can fall back to manual form entry; nothing is
// retried here.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

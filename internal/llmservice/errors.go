package llmservice

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means the endpoint answered 2xx but the body had no
// choices[0].message.content.
var ErrMalformedResponse = errors.New("malformed completion response")

// TransportError wraps a failure to reach the endpoint: connection refused,
// timeout, TLS, or a cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx reply. Body is kept verbatim for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

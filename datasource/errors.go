package datasource

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a gateway fetch failure.
type ErrorKind string

const (
	// ErrTimeout means the request exceeded its deadline.
	ErrTimeout ErrorKind = "timeout"
	// ErrNetworkUnreachable means the connection could not be established.
	ErrNetworkUnreachable ErrorKind = "network_unreachable"
	// ErrAuth means the API rejected the credential (HTTP 401/403).
	ErrAuth ErrorKind = "auth_error"
	// ErrNotFound means the location did not resolve. The weather API
	// returns 400 for unknown locations rather than 404.
	ErrNotFound ErrorKind = "not_found"
	// ErrUpstream covers any other non-2xx status.
	ErrUpstream ErrorKind = "upstream_error"
	// ErrMalformedResponse means a 2xx body was not valid JSON or lacked
	// the expected top-level key for the requested endpoint.
	ErrMalformedResponse ErrorKind = "malformed_response"
)

// FetchError is a classified failure of a single gateway fetch.
type FetchError struct {
	Kind     ErrorKind
	Endpoint EndpointKind
	Location string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s fetch for %q failed: %s", e.Endpoint, e.Location, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err, or "" when err is not a
// FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

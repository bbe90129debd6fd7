package client

import (
	"errors"
	"fmt"
)

// TransportError is the uniform failure of every round trip. StatusCode is
// zero when the service could not be reached at all.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("service unreachable: %s", e.Message)
	}
	return fmt.Sprintf("service returned %d: %s", e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Unreachable reports whether the request never got an HTTP response
func (e *TransportError) Unreachable() bool {
	return e.StatusCode == 0
}

// AsTransportError extracts a TransportError from err's chain
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

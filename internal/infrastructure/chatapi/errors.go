package chatapi

import (
	"fmt"
)

// TransportError is a failed exchange with the chat endpoint: either the
// request never completed or the server answered outside the 2xx range.
type TransportError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	if e.Err == nil {
		return "request failed"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError means the chat endpoint answered 2xx with a body that is not JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

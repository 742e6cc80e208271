package transport

import (
	"errors"
	"fmt"
)

// Sentinel kinds for transport errors.
var (
	ErrTransport      = errors.New("transport failure")
	ErrInvalidRequest = errors.New("invalid request descriptor")
	ErrReplyTooLarge  = errors.New("reply body too large")
)

// Error describes a failed attempt: network failure, timeout, non-2xx status or
// an oversized reply.
// Its message mirrors what a browser HTTP client reports so it can be shown as-is.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	// Body holds the reply body for non-2xx statuses.
	Body    []byte
	Message string
	Err     error

	timeout bool
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrTransport for every transport Error.
func (e *Error) Is(target error) bool {
	return target == ErrTransport
}

// Timeout reports whether the attempt exceeded the client timeout.
func (e *Error) Timeout() bool {
	return e.timeout
}

func tooLargeError(method, url string, status int, limit int64) *Error {
	return &Error{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Message:    fmt.Sprintf("maxContentLength size of %d exceeded", limit),
		Err:        ErrReplyTooLarge,
	}
}

func statusError(method, url string, status int, body []byte) *Error {
	return &Error{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
		Message:    fmt.Sprintf("Request failed with status code %d", status),
	}
}

package pipeline

import "errors"

// Sentinel kinds for pipeline errors.
var (
	// ErrFailureMessage marks a plain-text reply classified as a failure.
	ErrFailureMessage = errors.New("failure message")
	// ErrRequest marks an outgoing interceptor rejection.
	ErrRequest = errors.New("request interceptor failed")
)

// MessageError is a plain-text reply that contains a failure keyword.
// Error returns the reply text unchanged.
type MessageError struct {
	Message string
}

func (e *MessageError) Error() string {
	return e.Message
}

// Is reports ErrFailureMessage.
func (e *MessageError) Is(target error) bool {
	return target == ErrFailureMessage
}

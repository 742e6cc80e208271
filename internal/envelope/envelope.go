// Package envelope interprets the {success, message, data} reply convention.
//
// Two conventions coexist across the resource clients and are kept explicit:
// Unwrap/Require check success and fail with the server or default message,
// Passthrough hands the pipeline result to the caller untouched.
package envelope

import (
	"errors"
	"fmt"

	"github.com/okian/smarthrm/internal/pipeline"
)

// Sentinel kinds for envelope errors.
var (
	ErrFailure = errors.New("envelope reported failure")
	ErrDecode  = errors.New("envelope decode failed")
)

// Envelope is the structured reply shape.
type Envelope[T any] struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    T                 `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// FailureError is a success=false envelope. Error returns Message unchanged.
type FailureError struct {
	Message string
	// Fields holds per-field validation messages, when the server sent any.
	Fields map[string]string
}

func (e *FailureError) Error() string {
	return e.Message
}

// Is reports ErrFailure.
func (e *FailureError) Is(target error) bool {
	return target == ErrFailure
}

// Require decodes reply as an envelope and returns it whole when success is
// true. Otherwise it fails with the server message, or defaultMsg when the
// server sent none or the reply was not an envelope at all.
func Require[T any](reply pipeline.Reply, defaultMsg string) (Envelope[T], error) {
	var env Envelope[T]
	if reply.Kind != pipeline.KindObject {
		return env, &FailureError{Message: defaultMsg}
	}
	if err := reply.Decode(&env); err != nil {
		return Envelope[T]{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = defaultMsg
		}
		return Envelope[T]{}, &FailureError{Message: msg, Fields: env.Errors}
	}
	return env, nil
}

// Unwrap is Require returning only data.
func Unwrap[T any](reply pipeline.Reply, defaultMsg string) (T, error) {
	env, err := Require[T](reply, defaultMsg)
	if err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// Passthrough returns the pipeline result unchanged; envelope interpretation is
// left to the caller.
func Passthrough(reply pipeline.Reply, err error) (pipeline.Reply, error) {
	return reply, err
}

// Decode unmarshals a passthrough reply into T.
func Decode[T any](reply pipeline.Reply) (T, error) {
	var v T
	if err := reply.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return v, nil
}

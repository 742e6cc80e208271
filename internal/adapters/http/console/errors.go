package console

import "errors"

// ErrBadRequest marks malformed console query parameters.
var ErrBadRequest = errors.New("bad request")

package router

import "errors"

// Sentinel kinds for route table errors.
var (
	ErrNotFound        = errors.New("route not found")
	ErrInvalidTable    = errors.New("invalid route table")
	ErrPageUnavailable = errors.New("page unavailable")
)

package middleware

import "errors"

var (
	// ErrMiddlewareChainFailed is returned when a chain has nothing to hand the request to.
	ErrMiddlewareChainFailed = errors.New("middleware chain has no final handler")

	// ErrInvalidContext is returned when a chain runs without a request context.
	ErrInvalidContext = errors.New("middleware context is nil")
)

package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates the resource is being modified concurrently
	ErrConflict = errors.New("conflict")

	// ErrScopeViolation indicates the question is not about a supported finance topic
	ErrScopeViolation = errors.New("question out of scope")

	// ErrUpstream indicates the language model call failed or returned nothing usable
	ErrUpstream = errors.New("upstream completion failed")

	// ErrEmptyCompletion indicates the model answered without any usable text
	ErrEmptyCompletion = errors.New("empty completion")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates a backing service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)

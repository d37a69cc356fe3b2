package domain

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller lacks the role or relationship
	// required for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation wraps input validation failures.
	ErrValidation = errors.New("invalid input")
)

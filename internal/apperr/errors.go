// Package apperr declares the sentinel errors shared across Eihwaz.
package apperr

import "errors"

var (
	// ErrNotFound marks a sidebar reference (id or fname) that matches no
	// note in the supplied graph. Fatal to the whole resolution call.
	ErrNotFound = errors.New("note does not exist")

	// ErrInvalidConfig marks configuration that failed validation, or a
	// resolution failure that could not be classified further.
	ErrInvalidConfig = errors.New("invalid configuration")
)

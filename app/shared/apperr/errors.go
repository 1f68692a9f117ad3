// Package apperr holds the error taxonomy shared by every module.
//
// Modules declare their own domain errors and wrap one of these kinds so the
// HTTP layer can map any failure to an outcome with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated marks a request without a resolvable caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks a caller lacking the required capability.
	ErrForbidden = errors.New("access denied")

	// ErrNotFound marks a referenced id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks a mutation whose affected row count broke its post-condition.
	ErrPersistence = errors.New("database error")
)

// Kind is a domain error that belongs to one of the shared kinds.
type Kind struct {
	kind error
	msg  string
}

// New returns a domain error of the given kind.
func New(kind error, msg string) error {
	return &Kind{kind: kind, msg: msg}
}

func (e *Kind) Error() string { return e.msg }

// Is reports whether target is the kind this error belongs to.
func (e *Kind) Is(target error) bool { return target == e.kind }

// Wrap annotates err with a kind while keeping the original chain.
func Wrap(kind error, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %w", fmt.Sprintf(format, args...), kind, err)
}

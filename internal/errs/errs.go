// Package errs holds the error taxonomy shared by the gateway, the services
// and the store. Every layer wraps one of these with fmt.Errorf("%w: ...") and
// the HTTP boundary maps them to status codes with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStore        = errors.New("store")
)

// ErrMissingCredential is an Unauthorized failure raised before any token is
// inspected.
var ErrMissingCredential = fmt.Errorf("%w: missing bearer credential", ErrUnauthorized)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Store(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

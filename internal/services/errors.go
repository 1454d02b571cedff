package services

import (
	"errors"
	"fmt"
)

// Service-layer errors. The HTTP boundary maps each one to a status code.
var (
	ErrValidation = errors.New("invalid request")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("secret does not match")
	ErrStore      = errors.New("store failure")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

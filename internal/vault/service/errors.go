package service

import (
	"errors"
	"fmt"
)

var (
	ErrQuotaExceeded   = errors.New("daily claim limit reached")
	ErrNoInventory     = errors.New("no unclaimed credentials left for this service")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrStoreFailure    = errors.New("store failure")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrServiceNotFound = errors.New("service not found")
)

// storeFailure wraps a low-level store error so callers can match both
// ErrStoreFailure and the original cause.
func storeFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

// invalid returns an ErrInvalidRequest carrying a reason.
func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}

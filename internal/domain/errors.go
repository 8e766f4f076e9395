package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable indicates the document store could not serve
	// the request. The underlying fault is carried in the message.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError rejects invalid input before any store write happens.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// Invalid builds a ValidationError from a reason string.
func Invalid(reason string) error {
	return ValidationError{Reason: reason}
}

// StoreError wraps a backend failure so callers can match it with
// errors.Is(err, ErrStoreUnavailable).
func StoreError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// Package apperrors defines the sentinel errors shared by the service and
// HTTP layers of the admissions backend.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a credential or session lookup matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized reports that a submitted secret did not match the stored one.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStorage reports any read or write fault against the record store.
	ErrStorage = errors.New("storage failure")
	// ErrSessionExpired reports a session that exists but is past its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// Storage wraps err so that it matches both ErrStorage and the underlying cause.
// A nil err yields nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

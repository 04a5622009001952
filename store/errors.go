package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a cart line, order, or user is absent.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when an order is fetched by a user whose
	// email does not match the order's customer email.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict signals a violated uniqueness invariant, e.g. a second
	// cart for one user. It is surfaced, never silently resolved.
	ErrConflict = errors.New("conflict")
	// ErrInvalidQuantity is returned for negative quantity updates.
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	// ErrInvalidStatus is returned for an unknown order status value.
	ErrInvalidStatus = errors.New("invalid order status")
)

// InvalidOrderError reports which checkout field failed validation so the
// client can correct its input.
type InvalidOrderError struct {
	Field string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order: missing or empty %s", e.Field)
}

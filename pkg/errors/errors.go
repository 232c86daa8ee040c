package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so transports can map it to a status code
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindUnauthorized      Kind = "unauthorized"
	KindIllegalTransition Kind = "illegal_transition"
	KindNotFound          Kind = "not_found"
	KindStoreConflict     Kind = "store_conflict"
	KindInternal          Kind = "internal"
)

var (
	// ErrNotFound indicates a referenced record is absent
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the actor is not the addressed party
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrIllegalTransition indicates an operation attempted from a non-matching state
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrStoreConflict indicates a predicate update lost a race
	ErrStoreConflict = errors.New("store conflict")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

var kindSentinels = []struct {
	kind     Kind
	sentinel error
}{
	{KindInvalidInput, ErrInvalidInput},
	{KindUnauthorized, ErrUnauthorized},
	{KindIllegalTransition, ErrIllegalTransition},
	{KindNotFound, ErrNotFound},
	{KindStoreConflict, ErrStoreConflict},
}

// NotFoundError creates a not found error with context
func NotFoundError(resource, id string) error {
	return fmt.Errorf("%s %q %w", resource, id, ErrNotFound)
}

// UnauthorizedError creates an authorization error with context
func UnauthorizedError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrUnauthorized)
	}
	return ErrUnauthorized
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// IllegalTransitionError reports a rejected state change
func IllegalTransitionError(from, to string) error {
	return fmt.Errorf("cannot transition from %q to %q: %w", from, to, ErrIllegalTransition)
}

// StoreConflictError reports that the stored state no longer matched the expectation
func StoreConflictError(resource, id string) error {
	return fmt.Errorf("%s %q changed concurrently: %w", resource, id, ErrStoreConflict)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// KindOf returns the kind of err, or KindInternal for unclassified errors
func KindOf(err error) Kind {
	for _, ks := range kindSentinels {
		if errors.Is(err, ks.sentinel) {
			return ks.kind
		}
	}
	return KindInternal
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

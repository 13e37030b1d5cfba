// Package domain holds the error taxonomy shared by all feature domains.
//
// Authorization failures are deliberately reported as NotFoundError so the
// API does not leak whether a resource exists to callers who may not see it.
package domain

import "fmt"

// NotFoundError indicates a missing resource, or one the caller is not
// allowed to see.
type NotFoundError struct {
	Entity string
	Msg    string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NewNotFoundError creates a NotFoundError for an entity with a numeric id.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, Msg: fmt.Sprintf("%s with id = %d not found", entity, id)}
}

// NewNotFoundErrorf creates a NotFoundError with a custom message.
func NewNotFoundErrorf(entity, format string, args ...any) *NotFoundError {
	return &NotFoundError{Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

// IncorrectTimeError indicates an invalid or conflicting booking interval.
type IncorrectTimeError struct {
	Msg string
}

func (e *IncorrectTimeError) Error() string { return e.Msg }

// NewIncorrectTimeError creates an IncorrectTimeError.
func NewIncorrectTimeError(format string, args ...any) *IncorrectTimeError {
	return &IncorrectTimeError{Msg: fmt.Sprintf(format, args...)}
}

// UnavailableError indicates an unavailable item or an illegal re-decision
// of a booking.
type UnavailableError struct {
	Msg string
}

func (e *UnavailableError) Error() string { return e.Msg }

// NewUnavailableError creates an UnavailableError.
func NewUnavailableError(format string, args ...any) *UnavailableError {
	return &UnavailableError{Msg: fmt.Sprintf(format, args...)}
}

// StateError indicates an unrecognized booking query state string.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

// NewStateError creates a StateError.
func NewStateError(format string, args ...any) *StateError {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError indicates malformed input outside the time/state kinds.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError creates a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError indicates a uniqueness or concurrent-modification conflict.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NewConflictError creates a ConflictError.
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSaveNotFound marks the normal first-save outcome: no record exists
	// at the requested key.
	ErrSaveNotFound = errors.New("save not found")
	// ErrCorruptRecord marks a record that exists but cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSlotOutOfRange     = errors.New("slot number out of range")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for field with a short reason.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

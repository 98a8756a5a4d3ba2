// Package common defines shared constants and sentinel errors used across
// the RDP Manager components. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")

	// Input errors (empty required field, bad port, unknown enum value).
	ErrValidation = errors.New("validation error")

	// Secret errors (wrong passphrase, corrupt or truncated ciphertext).
	ErrDecryption = errors.New("decryption failed")

	// Launch errors.
	ErrConnection = errors.New("connection error")
	ErrLaunch     = errors.New("launch error")
)

// ValidationError lists the fields that failed validation. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	if len(e.Fields) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields, ", "))
	}
	if e.Reason != "" {
		b.WriteString(" (")
		b.WriteString(e.Reason)
		b.WriteString(")")
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError is a shorthand for a single-field failure.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Reason: reason}
}

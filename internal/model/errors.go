package model

import (
	"errors"
	"sort"
)

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the row exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated means the presented token or session resolves to no user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrEmailTaken is returned by the user store on a unique email violation.
	ErrEmailTaken = errors.New("email is already taken")
)

// FieldErrors maps an input field name to its validation messages.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Merge copies every message of other into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		for _, msg := range msgs {
			f.Add(field, msg)
		}
	}
}

// ValidationError reports bad or missing input per field.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError wraps fields into a ValidationError.
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Error returns the first message in field name order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if msgs := e.Fields[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return "invalid input"
}

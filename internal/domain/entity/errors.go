package entity

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned by single-record lookups
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned by the login mocks
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPhoneTaken is returned when registering an existing phone
	ErrPhoneTaken = errors.New("phone already registered")

	// ErrIncorrectPassword is returned when the current password does not match
	ErrIncorrectPassword = errors.New("incorrect current password")

	// ErrNotConfirmed is returned when a confirmation prompt was declined
	ErrNotConfirmed = errors.New("action not confirmed")
)

// Validation message keys
const (
	MsgAddressRequired     = "addressRequired"
	MsgAddressMinLength    = "addressMinLength"
	MsgAddressInvalidChars = "addressInvalidChars"
	MsgFieldRequired       = "fieldRequired"
	MsgInvalidValue        = "invalidValue"
	MsgInvalidPhone        = "invalidPhone"
	MsgPasswordMinLength   = "passwordMinLength"
	MsgInvalidEmail        = "invalidEmail"
)

// ValidationErrors maps a field name to message keys.
// It blocks submission and is returned as a value, never panicked.
type ValidationErrors map[string][]string

// Add records msg against field
func (v ValidationErrors) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// HasErrors reports whether any field failed
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Error implements error
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(v[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns nil when there are no errors so callers can return it directly
func (v ValidationErrors) OrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

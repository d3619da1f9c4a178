package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies). Match them with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("access denied")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInviteCodeInvalid  = errors.New("invalid or expired invite code")
	ErrInviteCodeUsed     = errors.New("invite code already used")
	ErrWorkshopExists     = errors.New("owner already has a workshop")
	ErrWorkshopRequired   = errors.New("workshop setup required")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrOutstandingBalance = errors.New("job has an outstanding balance")
)

// ValidationError names the offending field. It unwraps to ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

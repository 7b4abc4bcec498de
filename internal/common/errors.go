// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrDuplicateEntry marks a write that collides with an existing record.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInsufficientData marks training sets too small or too uniform to fit.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidPattern marks a suggestion pattern that fails to compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidConfig marks configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

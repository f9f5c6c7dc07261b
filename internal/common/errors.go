// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Data-integrity errors.
	ErrMissingRank = errors.New("missing sort rank")

	// Aggregation errors.
	ErrMissingLevel = errors.New("hierarchy level not present in facts")

	// Rollforward errors.
	ErrYearsNotAscending = errors.New("years must be strictly ascending")
	ErrNoYears           = errors.New("no years to roll forward")

	// Source errors.
	ErrSourceNotFound = errors.New("source file not found")
	ErrMissingTable   = errors.New("missing workbook table")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
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

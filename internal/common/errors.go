package common

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned when an import file format is not recognized.
var ErrUnknownFormat = errors.New("unknown import format")

// UserError pairs an actionable message for the terminal with the underlying
// cause.
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

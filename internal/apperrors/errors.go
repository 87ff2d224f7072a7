package apperrors

import (
	"errors"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNoSession = errors.New("no active session")
)

// ConflictError reports an integrity-constraint violation together with the
// message the store produced. Recipe creation surfaces that message to the
// client as is, unlike signup which maps its conflict to a fixed string.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

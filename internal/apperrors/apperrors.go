// Package apperrors defines the error taxonomy shared by services and
// handlers: validation failures, authentication failures, uniqueness
// conflicts, and missing records.
package apperrors

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// logins; the two causes must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken signals a uniqueness conflict on signup.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
)

// ValidationError describes input rejected before any write.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation builds a ValidationError with the given reason.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package xerrors

import (
	"errors"
	"fmt"
)

// Application errors shared across services and handlers.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict: resource already exists")
	ErrInternal     = errors.New("internal server error")

	// ErrInvalidCredentials covers unknown usernames, wrong passwords and
	// inactive principals alike so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsAuthFailure reports whether err belongs to the authentication class
// (answered with a generic 401).
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrUnauthorized)
}

// InputError carries a caller-facing message for a 400 response.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Invalid builds an InputError that still matches ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// InputMessage returns the caller-facing text of an input error, or fallback.
func InputMessage(err error, fallback string) string {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Msg
	}
	return fallback
}

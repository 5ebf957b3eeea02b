package auth

import "errors"

var (
	// ErrUnauthenticated covers a missing, unknown, or expired session token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// Change-password validation errors. Each maps to a distinct message in
	// the change-password view.
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWrongPassword    = errors.New("wrong current password")
)

// IsValidation reports whether err is one of the change-password validation
// errors, i.e. recoverable at the view layer rather than a server fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrWrongPassword)
}

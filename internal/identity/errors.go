package identity

import "errors"

// Sentinel error kinds (stable for errors.Is at the gateway boundary).
var (
	// ErrInvalidCredentials is the single generic login failure. It covers
	// both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned by stores for a missing admin row.
	ErrNotFound = errors.New("admin not found")
)

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

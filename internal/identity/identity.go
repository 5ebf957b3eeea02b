// Package identity is the credential persistence boundary for the admin panel.
//
// It stores administrator records (username + salted password digest) and
// performs password verification. The plaintext password never leaves the
// function that receives it and is never persisted or logged.
package identity

import (
	"context"
	"strings"
	"time"
)

// DefaultUsername and DefaultPassword seed the very first admin record when
// the store is empty. The password must be changed through the panel.
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)

// Admin is the administrator account record.
// Salt and PasswordHash are credential material; callers outside this package
// should treat them as opaque.
type Admin struct {
	ID           string
	Username     string
	Salt         []byte
	PasswordHash []byte
	CreatedAt    time.Time
}

// Store is the admin credential persistence boundary.
type Store interface {
	// GetByUsername loads an admin by normalized username.
	// Returns ErrNotFound when no such admin exists.
	GetByUsername(ctx context.Context, username string) (Admin, error)

	// SetPassword replaces the stored salt and digest for username in one
	// atomic write. A fresh random salt is generated on every call.
	SetPassword(ctx context.Context, username, plaintext string) error

	// EnsureDefaultAdmin creates the default admin record iff the store holds
	// no admins yet. Idempotent.
	EnsureDefaultAdmin(ctx context.Context, now time.Time) error
}

// NormalizeUsername performs case-insensitive canonicalization.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Verify checks username/plaintext against the store.
//
// Both "unknown username" and "wrong password" collapse into
// ErrInvalidCredentials so the response cannot be used for username
// enumeration. When the username is unknown a dummy digest is still computed
// to keep the two failure paths close in timing.
func Verify(ctx context.Context, s Store, username, plaintext string) (Admin, error) {
	adm, err := s.GetByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if IsNotFound(err) {
			dummyDigest(plaintext)
			return Admin{}, ErrInvalidCredentials
		}
		return Admin{}, err
	}

	if !Match(plaintext, adm.Salt, adm.PasswordHash) {
		return Admin{}, ErrInvalidCredentials
	}
	return adm, nil
}

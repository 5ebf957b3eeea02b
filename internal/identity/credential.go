package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// SaltLength is the fixed salt size in bytes.
const SaltLength = 16

// MinPasswordLength is the minimum accepted password length, enforced by the
// change-password flow.
const MinPasswordLength = 6

// NewSalt returns SaltLength cryptographically secure random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	return salt, nil
}

// Digest computes the stored credential digest: SHA-256 over plaintext||salt.
// The scheme is a single digest pass; it is deliberately cheap and not a KDF.
func Digest(plaintext string, salt []byte) []byte {
	h := sha256.New()
	h.Write([]byte(plaintext))
	h.Write(salt)
	return h.Sum(nil)
}

// Match reports whether plaintext matches the stored salt/digest pair.
// The comparison is constant-time to avoid a side-channel on digest matching.
func Match(plaintext string, salt, expected []byte) bool {
	got := Digest(plaintext, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// dummyDigest burns one digest pass over a fixed salt. Used to keep the
// unknown-username path from returning measurably faster than a mismatch.
func dummyDigest(plaintext string) {
	var salt [SaltLength]byte
	_ = Digest(plaintext, salt[:])
}

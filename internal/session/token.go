package session

import (
	"crypto/rand"
	"encoding/base64"
)

// tokenBytes is the raw entropy per token: 32 bytes (256 bits) makes
// collision and guessing probability negligible.
const tokenBytes = 32

// NewToken returns a new opaque session token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

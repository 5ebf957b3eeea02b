// Package session holds the in-memory session registry for the admin panel.
//
// The registry maps opaque tokens to (username, expiry). It is constructed by
// the composition root and passed by reference to consumers; there is no
// package-level instance. Sessions expire lazily at lookup time; Purge exists
// only for memory hygiene.
package session

import (
	"sync"
	"time"
)

// DefaultTTL is the session lifetime used when callers pass a non-positive TTL.
const DefaultTTL = 24 * time.Hour

type entry struct {
	username  string
	createdAt time.Time
	expiresAt time.Time
}

// Registry is the process-wide session table. Safe for concurrent use; a
// single mutex serializes every operation, so a reader never observes a
// half-applied RevokeAll.
type Registry struct {
	mu      sync.Mutex
	byToken map[string]entry
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byToken: make(map[string]entry)}
}

// Create issues a new session for username and returns the opaque token and
// its absolute expiry. Tokens carry 256 bits of entropy and are never reused:
// a revoked token simply ceases to exist in the table.
func (r *Registry) Create(username string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	token, err := NewToken()
	if err != nil {
		return "", time.Time{}, err
	}
	exp := now.Add(ttl)

	r.mu.Lock()
	r.byToken[token] = entry{username: username, createdAt: now, expiresAt: exp}
	r.mu.Unlock()

	return token, exp, nil
}

// Validate returns the owning username for a live token. An absent token and
// an expired one both yield ErrInvalidSession; an expired entry is removed
// during the lookup (lazy expiry).
func (r *Registry) Validate(token string, now time.Time) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byToken[token]
	if !ok {
		return "", ErrInvalidSession
	}
	if !now.Before(e.expiresAt) {
		delete(r.byToken, token)
		return "", ErrInvalidSession
	}
	return e.username, nil
}

// Revoke removes the entry for token if present. Revoking an absent or
// already-revoked token is a no-op, not an error.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	delete(r.byToken, token)
	r.mu.Unlock()
}

// RevokeAll removes every session owned by username in one step. No token
// issued to that identity survives; concurrent Validate calls see either the
// old table or the fully purged one.
func (r *Registry) RevokeAll(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, e := range r.byToken {
		if e.username == username {
			delete(r.byToken, token)
		}
	}
}

// Active returns the number of live (not yet expired) sessions.
func (r *Registry) Active() int {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.byToken {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// Purge drops expired entries. Correctness does not depend on it; it only
// bounds memory for tokens that are never presented again.
func (r *Registry) Purge(now time.Time) int {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for token, e := range r.byToken {
		if !now.Before(e.expiresAt) {
			delete(r.byToken, token)
			n++
		}
	}
	return n
}

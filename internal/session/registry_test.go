package session

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCreateAndValidate(t *testing.T) {
	r := NewRegistry()
	now := time.Now().UTC()

	token, exp, err := r.Create("admin", time.Hour, now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("expiry = %v, want %v", exp, now.Add(time.Hour))
	}

	username, err := r.Validate(token, now)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if username != "admin" {
		t.Fatalf("username = %q", username)
	}
}

func TestValidate_AbsentAndEmptyToken(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Validate("nope", time.Now()); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("absent token: %v", err)
	}
	if _, err := r.Validate("", time.Now()); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("empty token: %v", err)
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	r := NewRegistry()
	now := time.Now().UTC()

	token, _, err := r.Create("admin", time.Hour, now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	r.Revoke(token)
	if _, err := r.Validate(token, now); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("revoked token still validates")
	}

	// Revoking again (or revoking garbage) is a no-op, not an error.
	r.Revoke(token)
	r.Revoke("never-existed")
}

func TestValidate_LazyExpiry(t *testing.T) {
	r := NewRegistry()
	now := time.Now().UTC()

	token, _, err := r.Create("admin", time.Second, now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Still valid one instant before the deadline.
	if _, err := r.Validate(token, now.Add(999*time.Millisecond)); err != nil {
		t.Fatalf("premature expiry: %v", err)
	}

	// Past the deadline: invalid, and the entry is removed.
	if _, err := r.Validate(token, now.Add(2*time.Second)); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expired token validated")
	}
	if r.Active() != 0 {
		t.Fatalf("expired entry not removed, active = %d", r.Active())
	}
	r.Revoke(token) // no-op after lazy removal
}

func TestRevokeAll(t *testing.T) {
	r := NewRegistry()
	now := time.Now().UTC()

	var adminTokens []string
	for i := 0; i < 5; i++ {
		tok, _, err := r.Create("admin", time.Hour, now)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		adminTokens = append(adminTokens, tok)
	}
	other, _, err := r.Create("other", time.Hour, now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	r.RevokeAll("admin")

	for _, tok := range adminTokens {
		if _, err := r.Validate(tok, now); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("token survived RevokeAll")
		}
	}
	if _, err := r.Validate(other, now); err != nil {
		t.Fatalf("unrelated identity's session was revoked: %v", err)
	}
}

func TestPurge(t *testing.T) {
	r := NewRegistry()
	now := time.Now().UTC()

	if _, _, err := r.Create("admin", time.Second, now); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := r.Create("admin", time.Hour, now); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if n := r.Purge(now.Add(time.Minute)); n != 1 {
		t.Fatalf("purged %d, want 1", n)
	}
	if r.Active() != 1 {
		t.Fatalf("active = %d, want 1", r.Active())
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tok, _, err := r.Create("admin", time.Hour, now)
				if err != nil {
					t.Errorf("Create: %v", err)
					return
				}
				if _, err := r.Validate(tok, now); err != nil {
					t.Errorf("Validate: %v", err)
					return
				}
				if j%3 == 0 {
					r.Revoke(tok)
				}
				if j%17 == 0 {
					r.RevokeAll("admin")
				}
			}
		}()
	}
	wg.Wait()
}

func TestTokenEntropy(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken: %v", err)
		}
		// 32 bytes base64url without padding.
		if len(tok) != 43 {
			t.Fatalf("token length = %d, want 43", len(tok))
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token generated")
		}
		seen[tok] = struct{}{}
	}
}

package identity

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/ids"
)

// MemoryStore is an in-memory Store used when no database is configured
// (dev mode) and by unit tests. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	admins map[string]Admin // keyed by normalized username
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{admins: make(map[string]Admin)}
}

// GetByUsername implements Store.
func (s *MemoryStore) GetByUsername(_ context.Context, username string) (Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adm, ok := s.admins[NormalizeUsername(username)]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return adm, nil
}

// SetPassword implements Store.
func (s *MemoryStore) SetPassword(_ context.Context, username, plaintext string) error {
	salt, err := NewSalt()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := NormalizeUsername(username)
	adm, ok := s.admins[key]
	if !ok {
		return ErrNotFound
	}
	adm.Salt = salt
	adm.PasswordHash = Digest(plaintext, salt)
	s.admins[key] = adm
	return nil
}

// EnsureDefaultAdmin implements Store.
func (s *MemoryStore) EnsureDefaultAdmin(_ context.Context, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.admins) > 0 {
		return nil
	}

	salt, err := NewSalt()
	if err != nil {
		return err
	}
	id, err := ids.NewULID(now)
	if err != nil {
		return err
	}

	s.admins[DefaultUsername] = Admin{
		ID:           id,
		Username:     DefaultUsername,
		Salt:         salt,
		PasswordHash: Digest(DefaultPassword, salt),
		CreatedAt:    now,
	}
	return nil
}

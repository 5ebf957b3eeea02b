package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"portfolio/internal/ids"
)

// MemoryStore is an in-memory Store for dev mode and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	projects []Project
	services []Service
	messages map[string]Message
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string]Message)}
}

// ListProjects implements Store.
func (s *MemoryStore) ListProjects(_ context.Context) ([]Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// FeaturedProjects implements Store.
func (s *MemoryStore) FeaturedProjects(ctx context.Context, limit int) ([]Project, error) {
	if limit <= 0 {
		limit = 3
	}
	all, _ := s.ListProjects(ctx)
	var out []Project
	for _, p := range all {
		if p.Featured {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListServices implements Store.
func (s *MemoryStore) ListServices(_ context.Context) ([]Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Service, len(s.services))
	copy(out, s.services)
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// FeaturedServices implements Store.
func (s *MemoryStore) FeaturedServices(ctx context.Context) ([]Service, error) {
	all, _ := s.ListServices(ctx)
	var out []Service
	for _, v := range all {
		if v.Featured {
			out = append(out, v)
		}
	}
	return out, nil
}

// CreateMessage implements Store.
func (s *MemoryStore) CreateMessage(_ context.Context, m Message) (Message, error) {
	now := time.Now().UTC()
	id, err := ids.NewULID(now)
	if err != nil {
		return Message{}, err
	}
	m.ID = id
	m.CreatedAt = now
	m.Read = false

	s.mu.Lock()
	s.messages[m.ID] = m
	s.mu.Unlock()
	return m, nil
}

// ListMessages implements Store.
func (s *MemoryStore) ListMessages(_ context.Context) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MarkMessageRead implements Store.
func (s *MemoryStore) MarkMessageRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return ErrNotFound
	}
	m.Read = true
	s.messages[id] = m
	return nil
}

// DeleteMessage implements Store.
func (s *MemoryStore) DeleteMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return ErrNotFound
	}
	delete(s.messages, id)
	return nil
}

// Stats implements Store.
func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Projects: len(s.projects), Services: len(s.services)}
	for _, m := range s.messages {
		if !m.Read {
			st.UnreadMessages++
		}
	}
	return st, nil
}

// Seed implements Store.
func (s *MemoryStore) Seed(_ context.Context, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.services) == 0 {
		for _, v := range seedServices() {
			id, err := ids.NewULID(now)
			if err != nil {
				return err
			}
			v.ID = id
			s.services = append(s.services, v)
		}
	}
	if len(s.projects) == 0 {
		for _, p := range seedProjects() {
			id, err := ids.NewULID(now)
			if err != nil {
				return err
			}
			p.ID = id
			p.CreatedAt = now
			s.projects = append(s.projects, p)
		}
	}
	return nil
}

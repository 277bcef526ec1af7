package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"
)

// Compile-time check to ensure MemoryStore implements store.Store
var _ store.Store = (*MemoryStore)(nil)

// MemoryStore is an in-process store.Store used when no DATABASE_URL is
// configured (demo mode) and by the test suite. Data does not survive a
// restart.
//
// Each Get/Set is atomic, but the store deliberately does nothing to protect
// a caller's read-modify-write cycle across two calls; the same lost-update
// window exists here as with the database-backed store.
type MemoryStore struct {
	mu    sync.RWMutex
	kv    map[string]json.RawMessage
	users map[string]models.User // keyed by email
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		kv:    make(map[string]json.RawMessage),
		users: make(map[string]models.User),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.kv[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make(json.RawMessage, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value json.RawMessage) error {
	stored := make(json.RawMessage, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kv, key)
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = *user
	return nil
}

package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

// MemorySessionStore keeps sessions in process memory. Sessions are lost on
// restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]entities.Session),
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// RenameEmail moves every session of oldEmail to newEmail.
func (s *MemorySessionStore) RenameEmail(_ context.Context, oldEmail, newEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.Email == oldEmail {
			session.Email = newEmail
			s.sessions[id] = session
		}
	}
	return nil
}

// Sweep removes sessions older than ttl and returns how many are left.
func (s *MemorySessionStore) Sweep(_ context.Context, now time.Time, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.Expired(now, ttl) {
			delete(s.sessions, id)
		}
	}
	return len(s.sessions), nil
}

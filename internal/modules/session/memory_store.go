package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/handora-games/session-api/internal/modules/session/domain"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps sessions in process memory. It backs handler
// tests as a stand-in for the Postgres store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	events   map[string][]domain.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.Session),
		events:   make(map[string][]domain.Event),
	}
}

func (s *MemoryStore) Insert(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, found := s.sessions[id]
	if !found {
		return domain.Session{}, ErrSessionNotFound
	}

	session.TotalEvents = len(s.events[id])
	return session, nil
}

func (s *MemoryStore) Update(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found := s.sessions[session.ID]
	if !found {
		return ErrSessionNotFound
	}

	session.CreatedAt = existing.CreatedAt
	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		session.TotalEvents = len(s.events[session.ID])
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

func (s *MemoryStore) ListByGameKey(
	_ context.Context,
	key domain.GameKey,
	excludeID string,
) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]domain.Session, 0)
	for _, session := range s.sessions {
		if session.GameKey != key || session.ID == excludeID {
			continue
		}

		session.TotalEvents = len(s.events[session.ID])
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})

	return sessions, nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, event domain.Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.SessionID] = append(s.events[event.SessionID], event)
	return len(s.events[event.SessionID]), nil
}

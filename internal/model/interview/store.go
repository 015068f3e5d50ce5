package interview

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionComplete = errors.New("session already complete")
	ErrSessionExists   = errors.New("session already exists")
)

// Store owns every session record. Implementations must hand out copies only.
type Store interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Append records answer against the question under the cursor and advances
	// the cursor as one step.
	Append(ctx context.Context, id, answer string, at time.Time) (Session, error)
	// Delete removes the session and reports whether it was present.
	Delete(ctx context.Context, id string) (bool, error)
}

type entry struct {
	mu      sync.Mutex
	session Session
}

// MemoryStore implements Store in process memory. Each session has its own
// lock so concurrent answers on one session are applied one at a time.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*entry)}
}

// Create stores a new session.
func (s *MemoryStore) Create(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[session.ID]; ok {
		return ErrSessionExists
	}
	s.entries[session.ID] = &entry{session: session.Clone()}
	return nil
}

// Get returns a copy of the session.
func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	e, ok := s.lookup(id)
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Append records an answer for the current question.
func (s *MemoryStore) Append(_ context.Context, id, answer string, at time.Time) (Session, error) {
	e, ok := s.lookup(id)
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Complete() {
		return Session{}, ErrSessionComplete
	}

	e.session.Answers = append(e.session.Answers, Answer{
		Question:  e.session.Questions[e.session.Cursor],
		Answer:    answer,
		Timestamp: at,
	})
	e.session.Cursor++
	return e.session.Clone(), nil
}

// Delete removes the session. Deleting an unknown id is not an error; it
// reports false.
func (s *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return false, nil
	}
	delete(s.entries, id)
	return true, nil
}

// Count returns the number of stored sessions.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

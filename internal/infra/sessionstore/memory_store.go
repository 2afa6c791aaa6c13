package sessionstore

import (
	"context"
	"sync"

	"github.com/scapet/scapet-go/internal/domain/session"
)

// MemoryStore holds the snapshot in process memory, for tests and
// no-persist runs.
type MemoryStore struct {
	mu   sync.RWMutex
	snap session.Snapshot
	held bool
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (session.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.held, nil
}

func (s *MemoryStore) Save(_ context.Context, snap session.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.held = true
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = session.Snapshot{}
	s.held = false
	return nil
}

package cart

import (
	"context"
	"sync"
)

// Store is the persistence port for one cart slot per session. Load returns
// nil data when the slot is empty. Save overwrites the slot wholesale.
type Store interface {
	Load(ctx context.Context, session string) ([]byte, error)
	Save(ctx context.Context, session string, data []byte) error
}

// MemoryStore keeps slots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, session string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.slots[session]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Save(_ context.Context, session string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[session] = append([]byte(nil), data...)
	return nil
}

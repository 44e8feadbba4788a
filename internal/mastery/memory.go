package mastery

import (
	"context"
	"sync"
)

type recordKey struct {
	userID, setID, symbolID string
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]State
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[recordKey]State)}
}

// GetMastery implements Store.
func (m *MemoryStore) GetMastery(_ context.Context, userID, setID, symbolID string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.records[recordKey{userID, setID, symbolID}]; ok {
		return st, nil
	}
	return StateNotStarted, nil
}

// SetMastery implements Store.
func (m *MemoryStore) SetMastery(_ context.Context, userID, setID, symbolID string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey{userID, setID, symbolID}] = state
	return nil
}

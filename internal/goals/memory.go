package goals

import (
	"context"
	"sort"
	"sync"

	"github.com/abhisek/wordpath/internal/errs"
)

// MemoryStore is an in-memory Store safe for concurrent use. It stores
// copies, so callers cannot mutate saved goals.
type MemoryStore struct {
	mu    sync.RWMutex
	goals map[string]Goal
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{goals: make(map[string]Goal)}
}

func (m *MemoryStore) LoadGoal(_ context.Context, id string) (*Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, errs.NotFound("goal", id)
	}
	c := copyGoal(g)
	return &c, nil
}

func (m *MemoryStore) SaveGoal(_ context.Context, goal *Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.ID] = copyGoal(*goal)
	return nil
}

// GoalsForUser returns the user's goals ordered by creation time, then id.
func (m *MemoryStore) GoalsForUser(_ context.Context, userID string) ([]Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, copyGoal(g))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func copyGoal(g Goal) Goal {
	g.Milestones = append([]Milestone(nil), g.Milestones...)
	return g
}

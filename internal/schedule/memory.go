package schedule

import (
	"context"
	"sync"
)

// MemoryHistory is an in-memory History safe for concurrent use.
type MemoryHistory struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryHistory creates an empty MemoryHistory.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// RecordAssessment appends rec unless its assessment id is already
// recorded, in which case the first record is kept.
func (m *MemoryHistory) RecordAssessment(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.AssessmentID == rec.AssessmentID {
			return nil
		}
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryHistory) LatestAssessment(_ context.Context, userID, setID string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *Record
	for i := range m.records {
		r := m.records[i]
		if r.UserID != userID || r.SetID != setID {
			continue
		}
		if latest == nil || !r.CompletedAt.Before(latest.CompletedAt) {
			rc := r
			latest = &rc
		}
	}
	return latest, nil
}

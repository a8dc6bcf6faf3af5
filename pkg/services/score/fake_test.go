package score

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
)

// memoryStore is an in-memory score log used across the package tests.
type memoryStore struct {
	mu        sync.Mutex
	records   []store.FleetScore
	nextID    int64
	clock     time.Time
	appendErr error
	txCount   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memoryStore) Latest(_ context.Context, userID int64, goal string) (*store.FleetScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.filter(userID, goal)
	if len(h) == 0 {
		return nil, domain.NotFound("fleet score for user", userID)
	}
	latest := h[0]
	return &latest, nil
}

func (m *memoryStore) Append(_ context.Context, score store.FleetScore) (*store.FleetScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.nextID++
	m.clock = m.clock.Add(time.Second)
	score.ID = m.nextID
	score.RecordedAt = m.clock
	m.records = append(m.records, score)
	return &score, nil
}

func (m *memoryStore) History(_ context.Context, userID int64, goal string, limit int) ([]store.FleetScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.filter(userID, goal)
	if len(h) > limit {
		h = h[:limit]
	}
	return h, nil
}

func (m *memoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.txCount++
	m.mu.Unlock()
	return fn(ctx)
}

func (m *memoryStore) filter(userID int64, goal string) []store.FleetScore {
	var h []store.FleetScore
	for _, r := range m.records {
		if r.UserID == userID && r.GoalType == goal {
			h = append(h, r)
		}
	}
	sort.SliceStable(h, func(i, j int) bool {
		if h[i].RecordedAt.Equal(h[j].RecordedAt) {
			return h[i].ID > h[j].ID
		}
		return h[i].RecordedAt.After(h[j].RecordedAt)
	})
	return h
}

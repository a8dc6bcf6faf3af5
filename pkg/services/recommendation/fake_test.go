package recommendation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/recommendations"
)

type memoryRecommendations struct {
	mu          sync.Mutex
	recs        map[int64]store.Recommendation
	steps       map[int64]store.RecommendationStep
	nextID      int64
	statusWrite int
	stepWrite   int
}

func newMemoryRecommendations() *memoryRecommendations {
	return &memoryRecommendations{
		recs:  map[int64]store.Recommendation{},
		steps: map[int64]store.RecommendationStep{},
	}
}

func (m *memoryRecommendations) List(_ context.Context, f recommendations.Filter) ([]store.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []store.Recommendation{}
	for _, r := range m.recs {
		if r.UserID != f.UserID {
			continue
		}
		if f.Goal != nil && r.GoalType != *f.Goal {
			continue
		}
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (m *memoryRecommendations) Get(_ context.Context, id int64) (*store.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok {
		return nil, domain.NotFound("recommendation", id)
	}
	return &r, nil
}

func (m *memoryRecommendations) Create(_ context.Context, r store.Recommendation) (*store.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	if r.Status == "" {
		r.Status = string(domain.StatusNotified)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.ID) * time.Hour)
	}
	r.UpdatedAt = r.CreatedAt
	m.recs[r.ID] = r
	return &r, nil
}

func (m *memoryRecommendations) UpdateStatus(_ context.Context, id int64, status string) (*store.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok {
		return nil, domain.NotFound("recommendation", id)
	}
	m.statusWrite++
	r.Status = status
	r.UpdatedAt = r.UpdatedAt.Add(time.Minute)
	m.recs[id] = r
	return &r, nil
}

func (m *memoryRecommendations) ListSteps(_ context.Context, recID int64) ([]store.RecommendationStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []store.RecommendationStep{}
	for _, s := range m.steps {
		if s.RecommendationID == recID {
			res = append(res, s)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Position < res[j].Position })
	return res, nil
}

func (m *memoryRecommendations) GetStep(_ context.Context, id int64) (*store.RecommendationStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.steps[id]
	if !ok {
		return nil, domain.NotFound("step", id)
	}
	return &s, nil
}

func (m *memoryRecommendations) CreateStep(_ context.Context, s store.RecommendationStep) (*store.RecommendationStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	m.steps[s.ID] = s
	return &s, nil
}

func (m *memoryRecommendations) SetStepCompletion(_ context.Context, id int64, completed bool, at *time.Time) (*store.RecommendationStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.steps[id]
	if !ok {
		return nil, domain.NotFound("step", id)
	}
	m.stepWrite++
	s.IsCompleted = completed
	s.CompletedAt.Valid = at != nil
	if at != nil {
		s.CompletedAt.Time = *at
	} else {
		s.CompletedAt.Time = time.Time{}
	}
	m.steps[id] = s
	return &s, nil
}

type memoryScores struct {
	mu      sync.Mutex
	records []store.FleetScore
}

func (m *memoryScores) Latest(_ context.Context, userID int64, goal string) (*store.FleetScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.UserID == userID && r.GoalType == goal {
			return &r, nil
		}
	}
	return nil, domain.NotFound("fleet score for user", userID)
}

func (m *memoryScores) Append(_ context.Context, s store.FleetScore) (*store.FleetScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = int64(len(m.records) + 1)
	s.RecordedAt = time.Date(2024, 1, 1, 0, 0, len(m.records), 0, time.UTC)
	m.records = append(m.records, s)
	return &s, nil
}

func (m *memoryScores) History(_ context.Context, userID int64, goal string, limit int) ([]store.FleetScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []store.FleetScore
	for i := len(m.records) - 1; i >= 0 && len(res) < limit; i-- {
		r := m.records[i]
		if r.UserID == userID && r.GoalType == goal {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memoryScores) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

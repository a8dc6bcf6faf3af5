package scoring

import (
	"context"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

// Store serves the static scoring reference tables.
type Store interface {
	GetModel(ctx context.Context, goal domain.GoalType) (domain.ScoringModel, error)
	ListModels(ctx context.Context) []domain.ScoringModel
}

type catalogStore struct {
	models map[domain.GoalType]domain.ScoringModel
}

func NewStore() Store {
	return &catalogStore{models: catalog}
}

func (s *catalogStore) GetModel(_ context.Context, goal domain.GoalType) (domain.ScoringModel, error) {
	if !goal.Valid() {
		return domain.ScoringModel{}, domain.NewValidationError("goal", "unsupported goal "+string(goal))
	}
	model, ok := s.models[goal]
	if !ok {
		return domain.ScoringModel{}, domain.ErrNotFound
	}
	return clone(model), nil
}

func (s *catalogStore) ListModels(_ context.Context) []domain.ScoringModel {
	models := make([]domain.ScoringModel, 0, len(domain.SupportedGoals))
	for _, goal := range domain.SupportedGoals {
		if model, ok := s.models[goal]; ok {
			models = append(models, clone(model))
		}
	}
	return models
}

func clone(m domain.ScoringModel) domain.ScoringModel {
	m.Events = append([]domain.ScoringEvent(nil), m.Events...)
	return m
}

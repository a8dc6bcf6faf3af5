package scoring

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/store/scoring"
)

type Catalog interface {
	Model(ctx context.Context, goal domain.GoalType) (domain.ScoringModel, error)
	Models(ctx context.Context) []domain.ScoringModel
	Bands(ctx context.Context, goal domain.GoalType) (domain.WeightBands, error)
}

type catalog struct {
	store scoring.Store
}

func NewCatalog(store scoring.Store) (Catalog, error) {
	if store == nil {
		return nil, fmt.Errorf("scoring store is nil")
	}
	return &catalog{store: store}, nil
}

func (c *catalog) Model(ctx context.Context, goal domain.GoalType) (domain.ScoringModel, error) {
	return c.store.GetModel(ctx, goal)
}

func (c *catalog) Models(ctx context.Context) []domain.ScoringModel {
	return c.store.ListModels(ctx)
}

// Bands groups the goal's events by weight, each band heaviest first.
func (c *catalog) Bands(ctx context.Context, goal domain.GoalType) (domain.WeightBands, error) {
	model, err := c.store.GetModel(ctx, goal)
	if err != nil {
		return domain.WeightBands{}, err
	}
	return GroupByBand(model.Events), nil
}

func GroupByBand(events []domain.ScoringEvent) domain.WeightBands {
	sorted := append([]domain.ScoringEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		return sorted[i].Name < sorted[j].Name
	})

	bands := domain.WeightBands{
		High:   []domain.ScoringEvent{},
		Medium: []domain.ScoringEvent{},
		Low:    []domain.ScoringEvent{},
	}
	for _, e := range sorted {
		switch domain.BandFor(e.Weight) {
		case domain.BandHigh:
			bands.High = append(bands.High, e)
		case domain.BandMedium:
			bands.Medium = append(bands.Medium, e)
		default:
			bands.Low = append(bands.Low, e)
		}
	}
	return bands
}

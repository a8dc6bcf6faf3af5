package score

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/metrics"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/cache"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/scores"
)

const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 500
)

// Aggregator maintains the append-only score log of every (user, goal) pair.
type Aggregator interface {
	GetScore(ctx context.Context, userID int64, goal domain.GoalType) (float64, error)
	RecordImprovement(ctx context.Context, userID int64, goal domain.GoalType, delta float64) (domain.FleetScore, error)
	History(ctx context.Context, userID int64, goal domain.GoalType, limit int) (domain.ScoreHistory, error)
}

type aggregator struct {
	store scores.Store
	cache cache.ScoreCache
}

// NewAggregator wires the score log. cache may be nil.
func NewAggregator(store scores.Store, scoreCache cache.ScoreCache) (Aggregator, error) {
	if store == nil {
		return nil, fmt.Errorf("score store is nil")
	}
	return &aggregator{store: store, cache: scoreCache}, nil
}

func (a *aggregator) GetScore(ctx context.Context, userID int64, goal domain.GoalType) (float64, error) {
	if !goal.Valid() {
		return 0, domain.NewValidationError("goal", fmt.Sprintf("unsupported goal %q", goal))
	}

	if a.cache != nil {
		cached, ok, err := a.cache.Get(ctx, userID, string(goal))
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("score cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	current, err := a.latest(ctx, userID, goal)
	if err != nil {
		return 0, err
	}
	postgres.AfterCommit(ctx, func() {
		a.refresh(ctx, userID, goal, current)
	})
	return current, nil
}

// RecordImprovement appends a record with score min(current+delta, 100). The read of
// the current score and the append share one transaction. The cached score is evicted
// once the outermost transaction commits, so the next read projects from the log.
func (a *aggregator) RecordImprovement(
	ctx context.Context,
	userID int64,
	goal domain.GoalType,
	delta float64,
) (domain.FleetScore, error) {
	if err := validateImprovement(goal, delta); err != nil {
		return domain.FleetScore{}, err
	}

	var appended *store.FleetScore
	err := a.store.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := a.latest(ctx, userID, goal)
		if err != nil {
			return err
		}

		next := math.Min(current+delta, domain.MaxScore)
		appended, err = a.store.Append(ctx, store.FleetScore{
			UserID:   userID,
			GoalType: string(goal),
			Score:    next,
			Delta:    next - current,
		})
		return err
	})
	if err != nil {
		return domain.FleetScore{}, err
	}

	recorded := *appended
	postgres.AfterCommit(ctx, func() {
		metrics.RecordImprovement(string(goal))
		a.evict(ctx, userID, goal)

		zerolog.Ctx(ctx).Info().
			Int64("user_id", userID).
			Str("goal", string(goal)).
			Float64("score", recorded.Score).
			Float64("delta", recorded.Delta).
			Msg("fleet score improved")
	})

	return adapters.MapStoreFleetScoreToDomain(*appended), nil
}

func (a *aggregator) History(ctx context.Context, userID int64, goal domain.GoalType, limit int) (domain.ScoreHistory, error) {
	if !goal.Valid() {
		return nil, domain.NewValidationError("goal", fmt.Sprintf("unsupported goal %q", goal))
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := a.store.History(ctx, userID, string(goal), limit)
	if err != nil {
		return nil, err
	}

	history := make(domain.ScoreHistory, 0, len(records))
	for _, r := range records {
		history = append(history, adapters.MapStoreFleetScoreToDomain(r))
	}
	return history, nil
}

func (a *aggregator) latest(ctx context.Context, userID int64, goal domain.GoalType) (float64, error) {
	latest, err := a.store.Latest(ctx, userID, string(goal))
	if domain.IsNotFound(err) {
		return domain.MinScore, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Score, nil
}

func (a *aggregator) refresh(ctx context.Context, userID int64, goal domain.GoalType, score float64) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, userID, string(goal), score); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("score cache write failed")
	}
}

func (a *aggregator) evict(ctx context.Context, userID int64, goal domain.GoalType) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, userID, string(goal)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("score cache eviction failed")
	}
}

func validateImprovement(goal domain.GoalType, delta float64) error {
	vErr := &domain.ValidationError{}
	if !goal.Valid() {
		vErr.Add("goal", fmt.Sprintf("unsupported goal %q", goal))
	}
	if err := validateDelta(delta); err != nil {
		vErr.Fields = append(vErr.Fields, err.Fields...)
	}
	return vErr.OrNil()
}

func validateDelta(delta float64) *domain.ValidationError {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta < 0 {
		return domain.NewValidationError("delta", "must be a finite number greater than or equal to 0")
	}
	return nil
}

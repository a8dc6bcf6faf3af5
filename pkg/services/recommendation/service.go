package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/metrics"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/recommendations"
)

type Service interface {
	List(ctx context.Context, filter domain.RecommendationFilter) ([]domain.Recommendation, error)
	Get(ctx context.Context, id int64) (domain.Recommendation, error)
	ListSteps(ctx context.Context, recommendationID int64) ([]domain.RecommendationStep, error)
	SuggestStatus(ctx context.Context, recommendationID int64) (domain.StatusSuggestion, error)

	SetStatus(ctx context.Context, id int64, status domain.RecommendationStatus) (domain.Recommendation, error)
	MarkComplete(ctx context.Context, id int64) (domain.CompletionResult, error)

	SetStepCompletion(ctx context.Context, stepID int64, completed bool) (domain.RecommendationStep, error)
	ToggleStep(ctx context.Context, stepID int64) (domain.RecommendationStep, error)
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	store      recommendations.Store
	aggregator score.Aggregator
	strategy   score.DeltaStrategy
	tx         Transactor
	now        func() time.Time
}

func NewService(
	store recommendations.Store,
	aggregator score.Aggregator,
	strategy score.DeltaStrategy,
	tx Transactor,
) (Service, error) {
	if store == nil || aggregator == nil || strategy == nil || tx == nil {
		return nil, fmt.Errorf("recommendation service dependencies must not be nil")
	}
	return &service{
		store:      store,
		aggregator: aggregator,
		strategy:   strategy,
		tx:         tx,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) List(ctx context.Context, filter domain.RecommendationFilter) ([]domain.Recommendation, error) {
	storeFilter := recommendations.Filter{UserID: filter.UserID}
	if filter.Goal != nil {
		goal := string(*filter.Goal)
		storeFilter.Goal = &goal
	}

	recs, err := s.store.List(ctx, storeFilter)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Recommendation, 0, len(recs))
	for _, r := range recs {
		res = append(res, adapters.MapStoreRecommendationToDomain(r))
	}
	return res, nil
}

func (s *service) Get(ctx context.Context, id int64) (domain.Recommendation, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return adapters.MapStoreRecommendationToDomain(*rec), nil
}

func (s *service) ListSteps(ctx context.Context, recommendationID int64) ([]domain.RecommendationStep, error) {
	if _, err := s.store.Get(ctx, recommendationID); err != nil {
		return nil, err
	}

	steps, err := s.store.ListSteps(ctx, recommendationID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RecommendationStep, 0, len(steps))
	for _, step := range steps {
		res = append(res, adapters.MapStoreStepToDomain(step))
	}
	return res, nil
}

func (s *service) SuggestStatus(ctx context.Context, recommendationID int64) (domain.StatusSuggestion, error) {
	steps, err := s.ListSteps(ctx, recommendationID)
	if err != nil {
		return domain.StatusSuggestion{}, err
	}
	return DeriveStatus(steps), nil
}

// SetStatus commits any status. Setting the current status writes nothing.
func (s *service) SetStatus(ctx context.Context, id int64, status domain.RecommendationStatus) (domain.Recommendation, error) {
	rec, changed, err := s.commit(ctx, id, status)
	if err != nil {
		return domain.Recommendation{}, err
	}
	if changed {
		zerolog.Ctx(ctx).Info().Int64("recommendation_id", id).Str("status", string(status)).Msg("recommendation status set")
	}
	return rec, nil
}

// MarkComplete commits completed and, when the recommendation was not already
// completed, records a score improvement for its goal in the same transaction.
func (s *service) MarkComplete(ctx context.Context, id int64) (domain.CompletionResult, error) {
	var result domain.CompletionResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, changed, err := s.commit(ctx, id, domain.StatusCompleted)
		if err != nil {
			return err
		}
		result.Recommendation = rec
		if !changed {
			return nil
		}

		improved, err := s.aggregator.RecordImprovement(ctx, rec.UserID, rec.GoalType, s.strategy.Next())
		if err != nil {
			return fmt.Errorf("record improvement for recommendation %d: %w", id, err)
		}
		result.Score = &improved
		return nil
	})
	if err != nil {
		return domain.CompletionResult{}, err
	}
	return result, nil
}

func (s *service) commit(
	ctx context.Context,
	id int64,
	status domain.RecommendationStatus,
) (domain.Recommendation, bool, error) {
	if !status.Valid() {
		return domain.Recommendation{}, false, domain.NewValidationError("status", "must be one of notified, risk_accepted, in_progress, completed")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Recommendation{}, false, err
	}
	from := domain.RecommendationStatus(current.Status)

	changed, err := newLifecycle(from).Advance(ctx, status)
	if err != nil {
		return domain.Recommendation{}, false, err
	}
	if !changed {
		return adapters.MapStoreRecommendationToDomain(*current), false, nil
	}

	updated, err := s.store.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.Recommendation{}, false, err
	}
	postgres.AfterCommit(ctx, func() {
		metrics.RecordTransition(string(from), string(status))
	})
	return adapters.MapStoreRecommendationToDomain(*updated), true, nil
}

// SetStepCompletion keeps the original completed_at when the step already has the
// requested flag. It never touches the recommendation's stored status.
func (s *service) SetStepCompletion(ctx context.Context, stepID int64, completed bool) (domain.RecommendationStep, error) {
	step, err := s.store.GetStep(ctx, stepID)
	if err != nil {
		return domain.RecommendationStep{}, err
	}
	if step.IsCompleted == completed {
		return adapters.MapStoreStepToDomain(*step), nil
	}

	var at *time.Time
	if completed {
		now := s.now()
		at = &now
	}

	updated, err := s.store.SetStepCompletion(ctx, stepID, completed, at)
	if err != nil {
		return domain.RecommendationStep{}, err
	}
	return adapters.MapStoreStepToDomain(*updated), nil
}

func (s *service) ToggleStep(ctx context.Context, stepID int64) (domain.RecommendationStep, error) {
	step, err := s.store.GetStep(ctx, stepID)
	if err != nil {
		return domain.RecommendationStep{}, err
	}
	return s.SetStepCompletion(ctx, stepID, !step.IsCompleted)
}

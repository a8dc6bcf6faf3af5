package recommendations

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

const columns = `id, user_id, goal_type, title, description, actionable_insight, potential_impact,
	estimated_savings, time_to_implement, type, status, created_at, updated_at`

const stepColumns = `id, recommendation_id, position, title, description, is_completed, completed_at, created_at`

type Filter struct {
	UserID int64
	Goal   *string
}

type Store interface {
	List(ctx context.Context, filter Filter) ([]store.Recommendation, error)
	Get(ctx context.Context, id int64) (*store.Recommendation, error)
	Create(ctx context.Context, rec store.Recommendation) (*store.Recommendation, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*store.Recommendation, error)

	ListSteps(ctx context.Context, recommendationID int64) ([]store.RecommendationStep, error)
	GetStep(ctx context.Context, id int64) (*store.RecommendationStep, error)
	CreateStep(ctx context.Context, step store.RecommendationStep) (*store.RecommendationStep, error)
	SetStepCompletion(ctx context.Context, id int64, completed bool, at *time.Time) (*store.RecommendationStep, error)
}

type recommendationStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recommendationStore{db: db}, nil
}

func (s *recommendationStore) List(ctx context.Context, filter Filter) ([]store.Recommendation, error) {
	recs := []store.Recommendation{}
	query := `SELECT ` + columns + ` FROM recommendations WHERE user_id = $1`
	args := []interface{}{filter.UserID}
	if filter.Goal != nil {
		query += ` AND goal_type = $2`
		args = append(args, *filter.Goal)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	if err := sqlx.SelectContext(ctx, postgres.Querier(ctx, s.db), &recs, query, args...); err != nil {
		return nil, postgres.WrapError("list recommendations", err, "user", filter.UserID)
	}
	return recs, nil
}

func (s *recommendationStore) Get(ctx context.Context, id int64) (*store.Recommendation, error) {
	var rec store.Recommendation
	query := `SELECT ` + columns + ` FROM recommendations WHERE id = $1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &rec, query, id); err != nil {
		return nil, postgres.WrapError("get recommendation", err, "recommendation", id)
	}
	return &rec, nil
}

func (s *recommendationStore) Create(ctx context.Context, r store.Recommendation) (*store.Recommendation, error) {
	var created store.Recommendation
	query := `
		INSERT INTO recommendations (user_id, goal_type, title, description, actionable_insight,
			potential_impact, estimated_savings, time_to_implement, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + columns
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &created, query,
		r.UserID, r.GoalType, r.Title, r.Description, r.ActionableInsight,
		r.PotentialImpact, r.EstimatedSavings, r.TimeToImplement, r.Type, r.Status,
	)
	if err != nil {
		return nil, postgres.WrapError("create recommendation", err, "recommendation", 0)
	}
	return &created, nil
}

func (s *recommendationStore) UpdateStatus(ctx context.Context, id int64, status string) (*store.Recommendation, error) {
	var updated store.Recommendation
	query := `
		UPDATE recommendations SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + columns
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &updated, query, id, status); err != nil {
		return nil, postgres.WrapError("update recommendation status", err, "recommendation", id)
	}
	return &updated, nil
}

func (s *recommendationStore) ListSteps(ctx context.Context, recommendationID int64) ([]store.RecommendationStep, error) {
	steps := []store.RecommendationStep{}
	query := `
		SELECT ` + stepColumns + `
		FROM recommendation_steps
		WHERE recommendation_id = $1
		ORDER BY position ASC, id ASC`
	if err := sqlx.SelectContext(ctx, postgres.Querier(ctx, s.db), &steps, query, recommendationID); err != nil {
		return nil, postgres.WrapError("list recommendation steps", err, "recommendation", recommendationID)
	}
	return steps, nil
}

func (s *recommendationStore) GetStep(ctx context.Context, id int64) (*store.RecommendationStep, error) {
	var step store.RecommendationStep
	query := `SELECT ` + stepColumns + ` FROM recommendation_steps WHERE id = $1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &step, query, id); err != nil {
		return nil, postgres.WrapError("get recommendation step", err, "step", id)
	}
	return &step, nil
}

func (s *recommendationStore) CreateStep(ctx context.Context, step store.RecommendationStep) (*store.RecommendationStep, error) {
	var created store.RecommendationStep
	query := `
		INSERT INTO recommendation_steps (recommendation_id, position, title, description, is_completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + stepColumns
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &created, query,
		step.RecommendationID, step.Position, step.Title, step.Description, step.IsCompleted, step.CompletedAt)
	if err != nil {
		return nil, postgres.WrapError("create recommendation step", err, "step", 0)
	}
	return &created, nil
}

// SetStepCompletion writes the flag and timestamp together so completed_at is set iff
// is_completed holds.
func (s *recommendationStore) SetStepCompletion(ctx context.Context, id int64, completed bool, at *time.Time) (*store.RecommendationStep, error) {
	var updated store.RecommendationStep
	query := `
		UPDATE recommendation_steps SET is_completed = $2, completed_at = $3
		WHERE id = $1
		RETURNING ` + stepColumns
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &updated, query, id, completed, at); err != nil {
		return nil, postgres.WrapError("set step completion", err, "step", id)
	}
	return &updated, nil
}

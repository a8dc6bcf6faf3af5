package scores

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

const columns = `id, user_id, goal_type, score, delta, recorded_at`

// Store is the append-only fleet score log. Records are never updated or deleted.
type Store interface {
	Latest(ctx context.Context, userID int64, goal string) (*store.FleetScore, error)
	Append(ctx context.Context, score store.FleetScore) (*store.FleetScore, error)
	History(ctx context.Context, userID int64, goal string, limit int) ([]store.FleetScore, error)
	// WithinTransaction runs fn with a transaction in its context.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type scoreStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &scoreStore{db: db}, nil
}

func (s *scoreStore) Latest(ctx context.Context, userID int64, goal string) (*store.FleetScore, error) {
	var score store.FleetScore
	query := `
		SELECT ` + columns + `
		FROM fleet_scores
		WHERE user_id = $1 AND goal_type = $2
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &score, query, userID, goal); err != nil {
		return nil, postgres.WrapError("latest fleet score", err, "fleet score for user", userID)
	}
	return &score, nil
}

func (s *scoreStore) Append(ctx context.Context, score store.FleetScore) (*store.FleetScore, error) {
	var created store.FleetScore
	query := `
		INSERT INTO fleet_scores (user_id, goal_type, score, delta)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &created, query,
		score.UserID, score.GoalType, score.Score, score.Delta)
	if err != nil {
		return nil, postgres.WrapError("append fleet score", err, "fleet score", 0)
	}
	return &created, nil
}

func (s *scoreStore) History(ctx context.Context, userID int64, goal string, limit int) ([]store.FleetScore, error) {
	history := []store.FleetScore{}
	query := `
		SELECT ` + columns + `
		FROM fleet_scores
		WHERE user_id = $1 AND goal_type = $2
		ORDER BY recorded_at DESC, id DESC
		LIMIT $3`
	if err := sqlx.SelectContext(ctx, postgres.Querier(ctx, s.db), &history, query, userID, goal, limit); err != nil {
		return nil, postgres.WrapError("fleet score history", err, "user", userID)
	}
	return history, nil
}

func (s *scoreStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return postgres.InTransaction(ctx, s.db, fn)
}

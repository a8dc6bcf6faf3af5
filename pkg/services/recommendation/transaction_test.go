package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
	"github.com/de-tools/fleet-atlas/pkg/store/cache"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/recommendations"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/scores"
)

var (
	recRowCols = []string{
		"id", "user_id", "goal_type", "title", "description", "actionable_insight", "potential_impact",
		"estimated_savings", "time_to_implement", "type", "status", "created_at", "updated_at",
	}
	scoreRowCols = []string{"id", "user_id", "goal_type", "score", "delta", "recorded_at"}
)

type sqlFixture struct {
	svc  Service
	agg  score.Aggregator
	mock sqlmock.Sqlmock
	mr   *miniredis.Miniredis
	ctx  context.Context
}

// setupSQLFixture wires the real stores, transactor and redis cache over sqlmock.
func setupSQLFixture(t *testing.T) *sqlFixture {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		mockDB.Close()
	})
	db := sqlx.NewDb(mockDB, postgres.DriverName)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})
	scoreCache, err := cache.NewScoreCache(client, time.Minute)
	require.NoError(t, err)

	recStore, err := recommendations.NewStore(db)
	require.NoError(t, err)
	scoreStore, err := scores.NewStore(db)
	require.NoError(t, err)
	tx, err := postgres.NewTransactor(db)
	require.NoError(t, err)

	agg, err := score.NewAggregator(scoreStore, scoreCache)
	require.NoError(t, err)
	svc, err := NewService(recStore, agg, score.FixedDelta(5), tx)
	require.NoError(t, err)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	return &sqlFixture{
		svc:  svc,
		agg:  agg,
		mock: mock,
		mr:   mr,
		ctx:  logger.WithContext(context.Background()),
	}
}

func (f *sqlFixture) expectCompletion(latest float64) {
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT (.+) FROM recommendations WHERE id = (.+)").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(recRowCols).
			AddRow(int64(7), int64(1), "fuel", "Idle time", "desc", nil, nil, nil, nil,
				"info", "in_progress", now, now))
	f.mock.ExpectQuery("UPDATE recommendations SET status").
		WithArgs(int64(7), "completed").
		WillReturnRows(sqlmock.NewRows(recRowCols).
			AddRow(int64(7), int64(1), "fuel", "Idle time", "desc", nil, nil, nil, nil,
				"info", "completed", now, now))
	f.expectLatest(latest)
	f.mock.ExpectQuery("INSERT INTO fleet_scores").
		WithArgs(int64(1), "fuel", latest+5, 5.0).
		WillReturnRows(sqlmock.NewRows(scoreRowCols).
			AddRow(int64(21), int64(1), "fuel", latest+5, 5.0, now))
}

func (f *sqlFixture) expectLatest(latest float64) {
	f.mock.ExpectQuery("SELECT (.+) FROM fleet_scores").
		WithArgs(int64(1), "fuel").
		WillReturnRows(sqlmock.NewRows(scoreRowCols).
			AddRow(int64(20), int64(1), "fuel", latest, 1.0, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestService_MarkCompleteCommitFailureServesCommittedScore(t *testing.T) {
	f := setupSQLFixture(t)
	f.expectCompletion(50)
	f.mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	_, err := f.svc.MarkComplete(f.ctx, 7)
	require.ErrorContains(t, err, "commit transaction")
	assert.False(t, f.mr.Exists(cache.ScoreKey(1, "fuel")))

	f.expectLatest(50)
	current, err := f.agg.GetScore(f.ctx, 1, domain.GoalFuel)
	require.NoError(t, err)
	assert.Equal(t, 50.0, current)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_MarkCompleteEvictsCacheAfterCommit(t *testing.T) {
	f := setupSQLFixture(t)
	require.NoError(t, f.mr.Set(cache.ScoreKey(1, "fuel"), "50"))

	f.expectCompletion(50)
	f.mock.ExpectCommit()

	res, err := f.svc.MarkComplete(f.ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, res.Score)
	assert.Equal(t, 55.0, res.Score.Score)
	assert.Equal(t, domain.StatusCompleted, res.Recommendation.Status)
	assert.False(t, f.mr.Exists(cache.ScoreKey(1, "fuel")))

	f.expectLatest(55)
	current, err := f.agg.GetScore(f.ctx, 1, domain.GoalFuel)
	require.NoError(t, err)
	assert.Equal(t, 55.0, current)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_MarkCompleteCommitFailureKeepsCacheEntry(t *testing.T) {
	f := setupSQLFixture(t)
	require.NoError(t, f.mr.Set(cache.ScoreKey(1, "fuel"), "50"))

	f.expectCompletion(50)
	f.mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	_, err := f.svc.MarkComplete(f.ctx, 7)
	require.Error(t, err)

	cached, err := f.mr.Get(cache.ScoreKey(1, "fuel"))
	require.NoError(t, err)
	assert.Equal(t, "50", cached)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

package score

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/cache"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestNewAggregator_NilStore(t *testing.T) {
	a, err := NewAggregator(nil, nil)
	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestAggregator_GetScoreWithoutRecords(t *testing.T) {
	a, err := NewAggregator(newMemoryStore(), nil)
	require.NoError(t, err)

	score, err := a.GetScore(testContext(t), 1, domain.GoalSafety)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestAggregator_RecordImprovement(t *testing.T) {
	tests := []struct {
		name      string
		initial   []float64
		delta     float64
		wantScore float64
		wantDelta float64
	}{
		{name: "from empty log", delta: 0.5, wantScore: 0.5, wantDelta: 0.5},
		{name: "adds to latest", initial: []float64{80}, delta: 0.3, wantScore: 80.3, wantDelta: 0.3},
		{name: "clamped at 100", initial: []float64{99.8}, delta: 0.5, wantScore: 100, wantDelta: 100 - 99.8},
		{name: "already at 100", initial: []float64{100}, delta: 0.7, wantScore: 100, wantDelta: 0},
		{name: "zero delta", initial: []float64{42}, delta: 0, wantScore: 42, wantDelta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemoryStore()
			ctx := testContext(t)
			for _, v := range tt.initial {
				_, err := s.Append(ctx, store.FleetScore{UserID: 1, GoalType: "fuel", Score: v})
				require.NoError(t, err)
			}

			a, err := NewAggregator(s, nil)
			require.NoError(t, err)

			rec, err := a.RecordImprovement(ctx, 1, domain.GoalFuel, tt.delta)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScore, rec.Score, 1e-9)
			assert.InDelta(t, tt.wantDelta, rec.Delta, 1e-9)
			assert.Equal(t, domain.GoalFuel, rec.GoalType)
			assert.Equal(t, 1, s.txCount)

			current, err := a.GetScore(ctx, 1, domain.GoalFuel)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScore, current, 1e-9)
		})
	}
}

func TestAggregator_RecordImprovementRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		goal   domain.GoalType
		delta  float64
		fields []string
	}{
		{name: "negative delta", goal: domain.GoalSafety, delta: -0.1, fields: []string{"delta"}},
		{name: "nan delta", goal: domain.GoalSafety, delta: math.NaN(), fields: []string{"delta"}},
		{name: "infinite delta", goal: domain.GoalSafety, delta: math.Inf(1), fields: []string{"delta"}},
		{name: "goal and delta", goal: "comfort", delta: -1, fields: []string{"goal", "delta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemoryStore()
			a, err := NewAggregator(s, nil)
			require.NoError(t, err)

			_, err = a.RecordImprovement(testContext(t), 1, tt.goal, tt.delta)
			vErr, ok := domain.AsValidation(err)
			require.True(t, ok)

			var fields []string
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.fields, fields)
			assert.Empty(t, s.records)
		})
	}
}

func TestAggregator_ScoresNeverDecrease(t *testing.T) {
	s := newMemoryStore()
	a, err := NewAggregator(s, nil)
	require.NoError(t, err)
	ctx := testContext(t)

	strategy := RandomDelta(newSeededRand(7))
	previous := 0.0
	for i := 0; i < 300; i++ {
		rec, err := a.RecordImprovement(ctx, 1, domain.GoalMaintenance, strategy.Next())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rec.Score, previous)
		assert.LessOrEqual(t, rec.Score, 100.0)
		previous = rec.Score
	}
	assert.Equal(t, 100.0, previous)

	history, err := a.History(ctx, 1, domain.GoalMaintenance, 0)
	require.NoError(t, err)
	assert.Len(t, history, DefaultHistoryLimit)
	assert.Equal(t, previous, history.Latest())
}

func TestAggregator_HistoryIsPerGoal(t *testing.T) {
	s := newMemoryStore()
	a, err := NewAggregator(s, nil)
	require.NoError(t, err)
	ctx := testContext(t)

	_, err = a.RecordImprovement(ctx, 1, domain.GoalSafety, 0.2)
	require.NoError(t, err)
	_, err = a.RecordImprovement(ctx, 1, domain.GoalSafety, 0.4)
	require.NoError(t, err)
	_, err = a.RecordImprovement(ctx, 1, domain.GoalFuel, 0.9)
	require.NoError(t, err)
	_, err = a.RecordImprovement(ctx, 2, domain.GoalSafety, 0.9)
	require.NoError(t, err)

	history, err := a.History(ctx, 1, domain.GoalSafety, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.InDelta(t, 0.6, history[0].Score, 1e-9)
	assert.InDelta(t, 0.2, history[1].Score, 1e-9)
}

func TestAggregator_AppendFailureKeepsPreviousScore(t *testing.T) {
	s := newMemoryStore()
	ctx := testContext(t)
	_, err := s.Append(ctx, store.FleetScore{UserID: 1, GoalType: "safety", Score: 70})
	require.NoError(t, err)
	s.appendErr = &domain.TransportError{Op: "append fleet score", Err: errors.New("connection reset")}

	a, err := NewAggregator(s, nil)
	require.NoError(t, err)

	_, err = a.RecordImprovement(ctx, 1, domain.GoalSafety, 0.5)
	var tErr *domain.TransportError
	require.ErrorAs(t, err, &tErr)

	current, err := a.GetScore(ctx, 1, domain.GoalSafety)
	require.NoError(t, err)
	assert.Equal(t, 70.0, current)
}

func setupScoreCache(t *testing.T) (cache.ScoreCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})
	scoreCache, err := cache.NewScoreCache(client, time.Minute)
	require.NoError(t, err)
	return scoreCache, mr
}

func TestAggregator_UsesCache(t *testing.T) {
	scoreCache, mr := setupScoreCache(t)

	s := newMemoryStore()
	a, err := NewAggregator(s, scoreCache)
	require.NoError(t, err)
	ctx := testContext(t)

	rec, err := a.RecordImprovement(ctx, 3, domain.GoalUtilization, 0.8)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.ScoreKey(3, "utilization")))

	score, err := a.GetScore(ctx, 3, domain.GoalUtilization)
	require.NoError(t, err)
	assert.Equal(t, rec.Score, score)

	cached, err := mr.Get(cache.ScoreKey(3, "utilization"))
	require.NoError(t, err)
	assert.Equal(t, "0.8", cached)

	// the cache answers without touching the log
	s.records = nil
	score, err = a.GetScore(ctx, 3, domain.GoalUtilization)
	require.NoError(t, err)
	assert.Equal(t, rec.Score, score)
}

func TestAggregator_RecordImprovementEvictsStaleScore(t *testing.T) {
	scoreCache, mr := setupScoreCache(t)
	ctx := testContext(t)

	s := newMemoryStore()
	_, err := s.Append(ctx, store.FleetScore{UserID: 1, GoalType: "fuel", Score: 40})
	require.NoError(t, err)
	require.NoError(t, mr.Set(cache.ScoreKey(1, "fuel"), "40"))

	a, err := NewAggregator(s, scoreCache)
	require.NoError(t, err)

	_, err = a.RecordImprovement(ctx, 1, domain.GoalFuel, 2)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.ScoreKey(1, "fuel")))

	score, err := a.GetScore(ctx, 1, domain.GoalFuel)
	require.NoError(t, err)
	assert.Equal(t, 42.0, score)
}

func TestAggregator_FailedAppendKeepsCache(t *testing.T) {
	scoreCache, mr := setupScoreCache(t)
	ctx := testContext(t)

	s := newMemoryStore()
	_, err := s.Append(ctx, store.FleetScore{UserID: 1, GoalType: "safety", Score: 70})
	require.NoError(t, err)
	require.NoError(t, mr.Set(cache.ScoreKey(1, "safety"), "70"))
	s.appendErr = errors.New("connection reset")

	a, err := NewAggregator(s, scoreCache)
	require.NoError(t, err)

	_, err = a.RecordImprovement(ctx, 1, domain.GoalSafety, 5)
	require.Error(t, err)

	cached, err := mr.Get(cache.ScoreKey(1, "safety"))
	require.NoError(t, err)
	assert.Equal(t, "70", cached)
}

package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

func TestStore_GetModel(t *testing.T) {
	s := NewStore()

	for _, goal := range domain.SupportedGoals {
		t.Run(string(goal), func(t *testing.T) {
			model, err := s.GetModel(context.Background(), goal)
			require.NoError(t, err)
			assert.Equal(t, goal, model.Goal)
			assert.NotEmpty(t, model.Formula)
			assert.NotEmpty(t, model.Events)
			for _, e := range model.Events {
				assert.GreaterOrEqual(t, e.Weight, 0)
				assert.LessOrEqual(t, e.Weight, 100)
			}
		})
	}

	t.Run("unsupported goal", func(t *testing.T) {
		_, err := s.GetModel(context.Background(), "comfort")
		_, ok := domain.AsValidation(err)
		assert.True(t, ok)
	})
}

func TestStore_GetModelIsACopy(t *testing.T) {
	s := NewStore()
	model, err := s.GetModel(context.Background(), domain.GoalFuel)
	require.NoError(t, err)
	model.Events[0].Weight = 99

	again, err := s.GetModel(context.Background(), domain.GoalFuel)
	require.NoError(t, err)
	assert.NotEqual(t, 99, again.Events[0].Weight)
}

func TestStore_ListModels(t *testing.T) {
	models := NewStore().ListModels(context.Background())
	require.Len(t, models, len(domain.SupportedGoals))
	assert.Equal(t, domain.GoalSafety, models[0].Goal)
}

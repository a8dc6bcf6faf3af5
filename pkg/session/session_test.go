package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	id, ok := UserID(WithUser(context.Background(), 7))
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	_, ok = UserID(WithUser(context.Background(), 0))
	assert.False(t, ok)
}

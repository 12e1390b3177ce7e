package statuses

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/models"
)

func TestStream_EmitsOnceThenCloses(t *testing.T) {
	stream := NewRepository().Stream(context.Background())

	u, ok := <-stream
	require.True(t, ok)
	require.NoError(t, u.Err)
	require.Len(t, u.Value, 4)
	assert.Equal(t, models.StatusHaveRead, u.Value[0].Status)
	assert.Equal(t, 1, u.Value[0].ID)

	_, ok = <-stream
	assert.False(t, ok)
}

func TestStream_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := <-NewRepository().Stream(ctx)
	assert.False(t, ok)
}

package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AddKeepsBestResult(t *testing.T) {
	board := NewMemory()
	ctx := context.Background()

	isNewBest, err := board.Add(ctx, Entry{UserID: 1, Score: 5, Total: 10, Percentage: 50})
	require.NoError(t, err)
	assert.True(t, isNewBest)

	isNewBest, err = board.Add(ctx, Entry{UserID: 1, Score: 8, Total: 10, Percentage: 80})
	require.NoError(t, err)
	assert.True(t, isNewBest)

	// Худший результат не вытесняет рекорд.
	isNewBest, err = board.Add(ctx, Entry{UserID: 1, Score: 6, Total: 10, Percentage: 60})
	require.NoError(t, err)
	assert.False(t, isNewBest)

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 8, top[0].Score)
}

func TestMemory_TopOrdering(t *testing.T) {
	board := NewMemory()
	ctx := context.Background()

	entries := []Entry{
		{UserID: 1, Username: "middle", Score: 6, Total: 10, Percentage: 60},
		{UserID: 2, Username: "winner", Score: 9, Total: 10, Percentage: 90},
		{UserID: 3, Username: "loser", Score: 2, Total: 10, Percentage: 20},
	}
	for _, entry := range entries {
		_, err := board.Add(ctx, entry)
		require.NoError(t, err)
	}

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "winner", top[0].Username)
	assert.Equal(t, "middle", top[1].Username)
	assert.Equal(t, "loser", top[2].Username)
}

func TestMemory_TopLimit(t *testing.T) {
	board := NewMemory()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, err := board.Add(ctx, Entry{UserID: i, Score: int(i), Total: 10, Percentage: int(i) * 10})
		require.NoError(t, err)
	}

	top, err := board.Top(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, top, 3)

	top, err = board.Top(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, top, 5)
}

func TestMemory_TopEmpty(t *testing.T) {
	board := NewMemory()

	top, err := board.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

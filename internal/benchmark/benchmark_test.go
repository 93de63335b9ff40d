package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProducesOneSamplePerSize(t *testing.T) {
	t.Parallel()

	samples, err := Run(context.Background(), Options{MaxN: 25, ShelfCount: 3, ShelfCapacity: 10, Seed: 1})
	require.NoError(t, err)
	require.Len(t, samples, 25)

	for i, s := range samples {
		assert.Equal(t, i+1, s.N)
		assert.GreaterOrEqual(t, s.Static.Nanoseconds(), int64(0))
		assert.GreaterOrEqual(t, s.Greedy.Nanoseconds(), int64(0))
		assert.GreaterOrEqual(t, s.Knapsack.Nanoseconds(), int64(0))
	}

	longest := Max(samples)
	for _, s := range samples {
		assert.LessOrEqual(t, s.Knapsack, longest)
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []Options{
		{MaxN: 0, ShelfCount: 1, ShelfCapacity: 1},
		{MaxN: 1, ShelfCount: 0, ShelfCapacity: 1},
		{MaxN: 1, ShelfCount: 1, ShelfCapacity: 0},
		{MaxN: -4, ShelfCount: 1, ShelfCapacity: 1},
	}

	for _, opts := range tests {
		_, err := Run(context.Background(), opts)
		assert.ErrorIs(t, err, ErrInvalidOptions, "%+v", opts)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	samples, err := Run(ctx, Options{MaxN: 100, ShelfCount: 2, ShelfCapacity: 10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, samples)
}

func TestMaxOfEmpty(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Max(nil))
}

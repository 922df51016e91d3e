package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("Sequential", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)

		var offsets []int
		processed := 0
		callback := func(_ context.Context, batch []int, offset int) error {
			offsets = append(offsets, offset)
			processed += len(batch)
			assert.Equal(t, offset, batch[0])
			return nil
		}

		require.NoError(t, p.Process(context.Background(), items, callback))
		assert.Equal(t, 25, processed)
		assert.Equal(t, []int{0, 10, 20}, offsets)
	})

	t.Run("Progress", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		var seen []Progress
		p.WithProgressCallback(func(progress Progress) {
			seen = append(seen, progress)
		})

		require.NoError(t, p.Process(context.Background(), items, func(context.Context, []int, int) error {
			return nil
		}))
		require.Len(t, seen, 3)
		assert.Equal(t, 10, seen[0].ProcessedItems)
		assert.Equal(t, 40.0, seen[0].PercentComplete())
		assert.True(t, seen[2].IsComplete())
		assert.Equal(t, 3, seen[2].ProcessedBatches)
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		callback := func(_ context.Context, _ []int, offset int) error {
			if offset == 10 {
				return errors.New("fail")
			}
			return nil
		}

		err := p.Process(context.Background(), items, callback)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := p.Process(ctx, items, func(context.Context, []int, int) error {
			calls++
			cancel()
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		err := p.Process(context.Background(), nil, nil)
		assert.Equal(t, ErrEmptyItems, err)
	})

	t.Run("NilCallback", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		err := p.Process(context.Background(), items, nil)
		assert.Equal(t, ErrNilCallback, err)
	})

	t.Run("InvalidBatchSize", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		require.ErrorIs(t, err, ErrInvalidBatchSize)
		_, err = NewProcessor[int](MaxBatchSize + 1)
		require.ErrorIs(t, err, ErrInvalidBatchSize)
	})
}

func TestProcessor_CalculateBatches(t *testing.T) {
	p, _ := NewProcessor[int](10)
	batches := p.CalculateBatches(25)
	require.Len(t, batches, 3)
	assert.Equal(t, [2]int{0, 10}, batches[0])
	assert.Equal(t, [2]int{10, 20}, batches[1])
	assert.Equal(t, [2]int{20, 25}, batches[2])
	assert.Equal(t, 10, p.GetBatchSize())
	assert.Equal(t, 0, p.TotalBatches(0))
}

package batch

import (
	"context"
	"errors"
	"fmt"
)

// Default chunking configuration.
const (
	// DefaultBatchSize is the default number of items per chunk.
	DefaultBatchSize = 1000

	// MinBatchSize is the minimum allowed chunk size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed chunk size.
	MaxBatchSize = 100000
)

// Common processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 100000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// BatchCallback handles one chunk. offset is the index of batch[0] in the full slice,
// so callbacks can write results positionally without extra bookkeeping.
//
//nolint:revive // BatchCallback is the canonical name for this exported type.
type BatchCallback[T any] func(ctx context.Context, batch []T, offset int) error

// ProgressCallback is invoked after each chunk.
type ProgressCallback func(progress Progress)

// Processor walks a slice in fixed-size chunks on the calling goroutine,
// checking for cancellation between chunks.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given chunk size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults creates a processor with DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// Process hands items to callback chunk by chunk, in order, and stops on the first error.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback BatchCallback[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}

	progress := NewProgress(len(items), p.TotalBatches(len(items)), p.batchSize)

	for i, bounds := range p.CalculateBatches(len(items)) {
		if err := ctx.Err(); err != nil {
			return err
		}

		start, end := bounds[0], bounds[1]
		if err := callback(ctx, items[start:end], start); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}

		progress = progress.Advance(end - start)
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}

	return nil
}

// GetBatchSize returns the configured chunk size.
func (p *Processor[T]) GetBatchSize() int {
	return p.batchSize
}

// TotalBatches returns how many chunks totalItems splits into.
func (p *Processor[T]) TotalBatches(totalItems int) int {
	batches := totalItems / p.batchSize
	if totalItems%p.batchSize > 0 {
		batches++
	}
	return batches
}

// CalculateBatches returns the [start, end) bounds of every chunk.
func (p *Processor[T]) CalculateBatches(totalItems int) [][2]int {
	total := p.TotalBatches(totalItems)
	batches := make([][2]int, total)

	for i := range total {
		start := i * p.batchSize
		end := min(start+p.batchSize, totalItems)
		batches[i] = [2]int{start, end}
	}

	return batches
}

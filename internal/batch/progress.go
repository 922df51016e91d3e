package batch

import "time"

// percentMultiplier is used to convert a ratio to percentage (0-100).
const percentMultiplier = 100

// Progress is an immutable snapshot of a Process run.
type Progress struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	BatchSize        int
	StartTime        time.Time
}

// NewProgress creates a zeroed progress record starting now.
func NewProgress(totalItems, totalBatches, batchSize int) Progress {
	return Progress{
		TotalItems:   totalItems,
		TotalBatches: totalBatches,
		BatchSize:    batchSize,
		StartTime:    time.Now(),
	}
}

// Advance returns a copy with one more chunk of n items processed.
func (p Progress) Advance(n int) Progress {
	p.ProcessedItems += n
	p.ProcessedBatches++
	return p
}

// PercentComplete returns the completion percentage (0-100).
func (p Progress) PercentComplete() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return (float64(p.ProcessedItems) / float64(p.TotalItems)) * percentMultiplier
}

// IsComplete reports whether every item has been handed to the callback.
func (p Progress) IsComplete() bool {
	return p.ProcessedItems >= p.TotalItems
}

// ElapsedTime returns the time since processing started.
func (p Progress) ElapsedTime() time.Duration {
	return time.Since(p.StartTime)
}

// ItemsPerSecond returns the processing rate so far.
func (p Progress) ItemsPerSecond() float64 {
	elapsed := time.Since(p.StartTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(p.ProcessedItems) / elapsed
}

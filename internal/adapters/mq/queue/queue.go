// Package queue carries fixtures from the matchday scheduler to the
// simulation workers.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Outcome is what a worker sends back for one job.
type Outcome struct {
	FixtureID int64
	Result    matchsim.MatchResult
	Err       error
}

// Job is one fixture waiting to be simulated.
type Job struct {
	Matchday int
	Match    matchsim.MatchContext
	// Reply receives exactly one Outcome. It must be buffered or drained by
	// the caller; workers never block on it past their context.
	Reply chan<- Outcome
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job without blocking. It fails with ErrQueueFull or
	// ErrQueueClosed.
	Enqueue(ctx context.Context, j Job) error

	// Dequeue returns the channel workers read jobs from. It is closed
	// when the queue is closed.
	Dequeue(ctx context.Context) <-chan Job

	Len(ctx context.Context) int

	// Close stops accepting jobs. Queued jobs stay readable.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: jobs travel by value over the channel
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		return fmt.Errorf("fixture %d: %w", j.Match.FixtureID, ErrQueueClosed)
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError("context_cancelled")
		return fmt.Errorf("fixture %d: %w", j.Match.FixtureID, err)
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	default:
		metrics.RecordQueueEnqueueError("full")
		return fmt.Errorf("fixture %d: %w", j.Match.FixtureID, ErrQueueFull)
	}
}

// Dequeue returns the job channel shared by every worker.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Job {
	return q.jobs
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

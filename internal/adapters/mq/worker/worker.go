// Package worker simulates queued fixtures and records their results.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/jsmcel/androidfutbol5-sub000/internal/adapters/mq/queue"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/logger"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Simulator plays one fixture.
type Simulator interface {
	Simulate(mc matchsim.MatchContext) matchsim.MatchResult
}

// Recorder stores a finished fixture.
type Recorder interface {
	Record(ctx context.Context, matchday int, mc matchsim.MatchContext, res matchsim.MatchResult) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes jobs until its queue closes or it is shut down.
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	simulator Simulator
	recorder  Recorder
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, sim Simulator, rec Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		simulator: sim,
		recorder:  rec,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, j queue.Job) { //nolint:gocritic // hugeParam: jobs travel by value over the channel
	start := time.Now()
	res := w.simulator.Simulate(j.Match)
	latency := time.Since(start)

	out := queue.Outcome{FixtureID: j.Match.FixtureID, Result: res}
	if w.recorder != nil {
		if err := w.recorder.Record(ctx, j.Matchday, j.Match, res); err != nil {
			metrics.RecordWorkerError()
			metrics.RecordErrorByComponent("worker", "record")
			w.logger.Error(ctx, "recording fixture failed",
				logger.Int64("fixture_id", j.Match.FixtureID),
				logger.Error(err),
			)
			out.Err = fmt.Errorf("record fixture %d: %w", j.Match.FixtureID, err)
		}
	}

	metrics.RecordMatch(Summarize(res, latency))
	w.logger.Debug(ctx, "fixture played",
		logger.Int64("fixture_id", j.Match.FixtureID),
		logger.Int("matchday", j.Matchday),
		logger.Int("home_goals", res.HomeGoals),
		logger.Int("away_goals", res.AwayGoals),
		logger.Duration("latency", latency),
	)

	if j.Reply == nil {
		return
	}
	select {
	case j.Reply <- out:
	case <-ctx.Done():
	}
}

// Summarize turns a result into the counters the metrics layer records.
func Summarize(res matchsim.MatchResult, latency time.Duration) metrics.MatchOutcome { //nolint:gocritic // hugeParam: result is read once
	yellow, second, straight := res.Cards()
	return metrics.MatchOutcome{
		HomeGoals:     res.HomeGoals,
		AwayGoals:     res.AwayGoals,
		Yellow:        yellow,
		SecondYellow:  second,
		StraightRed:   straight,
		Injuries:      res.Count(matchsim.EventInjury, 0),
		VARDisallowed: res.VARDisallowedHome + res.VARDisallowedAway,
		LatencyMs:     float64(latency.Microseconds()) / 1000,
	}
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers; fewer than one means one per CPU.
func NewPool(workerCount int, q Queue, sim Simulator, rec Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, sim, rec, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue, lets workers drain it and waits for them.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut int
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut++
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerCount(0)
	if timedOut > 0 {
		return fmt.Errorf("%d workers did not stop: %w", timedOut, shutdownCtx.Err())
	}
	return nil
}

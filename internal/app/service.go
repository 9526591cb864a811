// Package service runs a league season on top of the simulation engines:
// matchdays are fanned out to a worker pool and season ends drive player
// development.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/jsmcel/androidfutbol5-sub000/internal/adapters/mq/queue"
	"github.com/jsmcel/androidfutbol5-sub000/internal/adapters/mq/worker"
	"github.com/jsmcel/androidfutbol5-sub000/internal/adapters/repository"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/dedupe"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/development"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/logger"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/metrics"
)

const enqueueRetryInterval = time.Millisecond

// Service owns the season state: the played-fixture set, the fixture queue,
// the worker pool and the league store.
type Service struct {
	mu sync.RWMutex

	simulator *matchsim.Simulator
	engine    *development.Engine
	store     repository.Store
	deduper   dedupe.Deduper
	queue     queue.Queue
	pool      *worker.Pool

	workerCount int
	queueSize   int
	dedupeSize  int
	season      int
	seed        int64

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   256,
		dedupeSize:  50_000,
		season:      time.Now().Year(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.simulator == nil {
		s.simulator = matchsim.New()
	}
	if s.engine == nil {
		s.engine = development.New()
	}
	if s.store == nil {
		s.store = repository.NewLeagueStore()
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s.simulator, s.store)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "season service started",
		logger.Int("season", s.season),
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dedupe_size", s.dedupeSize),
	)
	return nil
}

// Stop drains the queue and stops the workers.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping season service")
	err := s.pool.Shutdown(ctx)
	s.started = false
	return err
}

// StartSeason clears results and the played-fixture set and registers teams
// for the season starting in year.
func (s *Service) StartSeason(ctx context.Context, year int, teams []model.TeamMatchInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	s.season = year
	s.deduper.Reset(ctx)
	s.store.Reset(ctx)
	for _, t := range teams {
		s.store.Register(ctx, t.TeamID, t.TeamName)
	}
	s.logger.Info(ctx, "season opened", logger.Int("season", year), logger.Int("teams", len(teams)))
	return nil
}

// PlayMatchday simulates every fixture concurrently and returns the results
// in input order. Fixtures are validated and checked against the
// played-fixture set before anything is enqueued; a fixture without a seed
// uses the season seed. Results are recorded in the league store by the
// workers.
func (s *Service) PlayMatchday(ctx context.Context, matchday int, fixtures []matchsim.MatchContext) ([]matchsim.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	start := time.Now()

	for i := range fixtures {
		if err := matchsim.Validate(fixtures[i]); err != nil {
			metrics.RecordFixtureRejected()
			return nil, fmt.Errorf("matchday %d: %w", matchday, err)
		}
	}

	keys := make([]string, len(fixtures))
	for i := range fixtures {
		keys[i] = dedupe.FixtureKey(s.season, fixtures[i].FixtureID)
		if s.deduper.SeenAndRecord(ctx, keys[i]) {
			metrics.RecordFixtureDuplicate()
			s.forget(ctx, keys[:i])
			return nil, fmt.Errorf("matchday %d fixture %d: %w", matchday, fixtures[i].FixtureID, ErrDuplicateFixture)
		}
	}

	replies := make(chan queue.Outcome, len(fixtures))
	enqueued := 0
	var errs []error
	for i := range fixtures {
		mc := fixtures[i]
		if mc.Seed == 0 {
			mc.Seed = s.seed
		}
		if err := s.enqueue(ctx, queue.Job{Matchday: matchday, Match: mc, Reply: replies}); err != nil {
			s.forget(ctx, keys[i:])
			errs = append(errs, err)
			break
		}
		enqueued++
	}

	index := make(map[int64]int, len(fixtures))
	for i := range fixtures {
		index[fixtures[i].FixtureID] = i
	}
	results := make([]matchsim.MatchResult, len(fixtures))
	for n := 0; n < enqueued; n++ {
		select {
		case out := <-replies:
			results[index[out.FixtureID]] = out.Result
			if out.Err != nil {
				errs = append(errs, out.Err)
			}
		case <-ctx.Done():
			return results, fmt.Errorf("matchday %d: %w", matchday, ctx.Err())
		}
	}

	elapsed := time.Since(start)
	metrics.RecordMatchdayDuration(float64(elapsed.Microseconds()) / 1000)
	s.logger.Debug(ctx, "matchday played",
		logger.Int("matchday", matchday),
		logger.Int("fixtures", enqueued),
		logger.Duration("elapsed", elapsed),
	)
	return results, errors.Join(errs...)
}

// enqueue retries while the queue is full so a matchday larger than the
// queue still goes through.
func (s *Service) enqueue(ctx context.Context, j queue.Job) error { //nolint:gocritic // hugeParam: jobs travel by value
	for {
		err := s.queue.Enqueue(ctx, j)
		if !errors.Is(err, queue.ErrQueueFull) {
			return err
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("fixture %d: %w", j.Match.FixtureID, ctx.Err())
		case <-time.After(enqueueRetryInterval):
		}
	}
}

func (s *Service) forget(ctx context.Context, keys []string) {
	for _, k := range keys {
		s.deduper.Unrecord(ctx, k)
	}
}

// Standings returns the full league table.
func (s *Service) Standings(ctx context.Context) ([]repository.Standing, error) {
	n := s.store.Count(ctx)
	if n == 0 {
		return []repository.Standing{}, nil
	}
	return s.store.Table(ctx, n)
}

// Fixture returns a played fixture.
func (s *Service) Fixture(ctx context.Context, fixtureID int64) (repository.FixtureRecord, error) {
	return s.store.Fixture(ctx, fixtureID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"season":      s.season,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"teams":       s.store.Count(ctx),
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["playedFixtures"] = s.deduper.Size()
	}
	return stats
}

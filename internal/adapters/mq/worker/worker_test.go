package worker_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	queue "github.com/jsmcel/androidfutbol5-sub000/internal/adapters/mq/queue"
	worker "github.com/jsmcel/androidfutbol5-sub000/internal/adapters/mq/worker"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	logging "github.com/jsmcel/androidfutbol5-sub000/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type stubSimulator struct{}

func (stubSimulator) Simulate(mc matchsim.MatchContext) matchsim.MatchResult { //nolint:gocritic // hugeParam: mirrors the interface
	return matchsim.MatchResult{
		FixtureID: mc.FixtureID,
		HomeGoals: int(mc.FixtureID % 3),
		AwayGoals: 1,
		Seed:      mc.Seed,
	}
}

type memRecorder struct {
	mu      sync.Mutex
	played  map[int64]int
	failFor int64
}

func newRecorder() *memRecorder { return &memRecorder{played: make(map[int64]int)} }

func (r *memRecorder) Record(_ context.Context, matchday int, mc matchsim.MatchContext, _ matchsim.MatchResult) error { //nolint:gocritic // hugeParam: mirrors the interface
	if mc.FixtureID == r.failFor {
		return errors.New("storage unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played[mc.FixtureID] = matchday
	return nil
}

func (r *memRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.played)
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker reading from a queue", t, func() {
		_ = logging.Init(logging.WithOutput(io.Discard))
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		rec := newRecorder()
		w := worker.NewInMemoryWorker(q, stubSimulator{}, rec, worker.WithName("test-worker"))
		go w.Run(ctx)

		convey.Convey("When a fixture is enqueued", func() {
			reply := make(chan queue.Outcome, 1)
			err := q.Enqueue(ctx, queue.Job{Matchday: 3, Match: matchsim.MatchContext{FixtureID: 7, Seed: 99}, Reply: reply})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the result is recorded and replied", func() {
				out := <-reply
				convey.So(out.Err, convey.ShouldBeNil)
				convey.So(out.FixtureID, convey.ShouldEqual, int64(7))
				convey.So(out.Result.HomeGoals, convey.ShouldEqual, 1)
				convey.So(out.Result.Seed, convey.ShouldEqual, int64(99))
				convey.So(rec.count(), convey.ShouldEqual, 1)
				convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When recording fails", func() {
			rec.failFor = 5
			reply := make(chan queue.Outcome, 1)
			convey.So(q.Enqueue(ctx, queue.Job{Matchday: 1, Match: matchsim.MatchContext{FixtureID: 5}, Reply: reply}), convey.ShouldBeNil)

			convey.Convey("Then the error travels with the outcome", func() {
				out := <-reply
				convey.So(out.Err, convey.ShouldNotBeNil)
				convey.So(out.Err.Error(), convey.ShouldContainSubstring, "storage unavailable")
				convey.So(rec.count(), convey.ShouldEqual, 0)
				convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the queue closes", func() {
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then Run returns and shutdown completes", func() {
				sctx, cancel := context.WithTimeout(ctx, time.Second)
				defer cancel()
				convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of four workers", t, func() {
		_ = logging.Init(logging.WithOutput(io.Discard))
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		rec := newRecorder()
		p := worker.NewPool(4, q, stubSimulator{}, rec)
		convey.So(p.Size(), convey.ShouldEqual, 4)
		p.Start(ctx)

		convey.Convey("When a matchday of fixtures is enqueued", func() {
			const fixtures = 20
			reply := make(chan queue.Outcome, fixtures)
			for i := int64(1); i <= fixtures; i++ {
				convey.So(q.Enqueue(ctx, queue.Job{Matchday: 1, Match: matchsim.MatchContext{FixtureID: i}, Reply: reply}), convey.ShouldBeNil)
			}

			convey.Convey("Then every fixture is played exactly once", func() {
				seen := make(map[int64]bool)
				for i := 0; i < fixtures; i++ {
					out := <-reply
					convey.So(seen[out.FixtureID], convey.ShouldBeFalse)
					seen[out.FixtureID] = true
				}
				convey.So(len(seen), convey.ShouldEqual, fixtures)
				convey.So(rec.count(), convey.ShouldEqual, fixtures)
				convey.So(p.Shutdown(ctx), convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given a pool sized from the CPU count", t, func() {
		_ = logging.Init(logging.WithOutput(io.Discard))
		p := worker.NewPool(0, queue.NewInMemoryQueue(), stubSimulator{}, nil)

		convey.Convey("Then it has at least one worker", func() {
			convey.So(p.Size(), convey.ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}

func TestSummarize(t *testing.T) {
	convey.Convey("Given a result with cards, injuries and a disallowed goal", t, func() {
		res := matchsim.MatchResult{
			HomeGoals:         2,
			AwayGoals:         1,
			VARDisallowedAway: 1,
			Events: []matchsim.MatchEvent{
				{Minute: 12, Type: matchsim.EventYellowCard, TeamID: 1, PlayerID: 3},
				{Minute: 40, Type: matchsim.EventInjury, TeamID: 2, PlayerID: 8, InjuryWeeks: 4},
				{Minute: 70, Type: matchsim.EventVARDisallowed, TeamID: 2},
				{Minute: 81, Type: matchsim.EventRedCard, TeamID: 2, PlayerID: 9, RedReason: matchsim.RedStraight},
			},
		}

		convey.Convey("Then the summary carries every counter", func() {
			s := worker.Summarize(res, 1500*time.Microsecond)
			convey.So(s.HomeGoals, convey.ShouldEqual, 2)
			convey.So(s.AwayGoals, convey.ShouldEqual, 1)
			convey.So(s.Yellow, convey.ShouldEqual, 1)
			convey.So(s.SecondYellow, convey.ShouldEqual, 0)
			convey.So(s.StraightRed, convey.ShouldEqual, 1)
			convey.So(s.Injuries, convey.ShouldEqual, 1)
			convey.So(s.VARDisallowed, convey.ShouldEqual, 1)
			convey.So(s.LatencyMs, convey.ShouldAlmostEqual, 1.5, 1e-9)
		})
	})

	convey.Convey("Given a booked player sent off with a straight red in the same minute", t, func() {
		res := matchsim.MatchResult{Events: []matchsim.MatchEvent{
			{Minute: 33, Type: matchsim.EventYellowCard, TeamID: 1, PlayerID: 5},
			{Minute: 33, Type: matchsim.EventRedCard, TeamID: 1, PlayerID: 5, RedReason: matchsim.RedStraight},
		}}

		convey.Convey("Then the dismissal is counted as a straight red", func() {
			s := worker.Summarize(res, 0)
			convey.So(s.SecondYellow, convey.ShouldEqual, 0)
			convey.So(s.StraightRed, convey.ShouldEqual, 1)
		})
	})
}

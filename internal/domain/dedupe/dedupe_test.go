package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/jsmcel/androidfutbol5-sub000/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When a fixture is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, dedupe.FixtureKey(2025, 1))

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recorded again", func() {
				again := d.SeenAndRecord(ctx, dedupe.FixtureKey(2025, 1))

				Convey("Then it is reported as seen", func() {
					So(again, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the same fixture id is recorded in another season", func() {
				other := d.SeenAndRecord(ctx, dedupe.FixtureKey(2026, 1))

				Convey("Then it is a different key", func() {
					So(other, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 2)
				})
			})

			Convey("And unrecorded", func() {
				d.Unrecord(ctx, dedupe.FixtureKey(2025, 1))

				Convey("Then it can be played again", func() {
					So(d.Size(), ShouldEqual, 0)
					So(d.SeenAndRecord(ctx, dedupe.FixtureKey(2025, 1)), ShouldBeFalse)
				})
			})
		})

		Convey("When an unknown key is unrecorded", func() {
			d.Unrecord(ctx, "nonexistent")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When the deduper is reset", func() {
			for i := int64(1); i <= 5; i++ {
				d.SeenAndRecord(ctx, dedupe.FixtureKey(2025, i))
			}
			d.Reset(ctx)

			Convey("Then every key is forgotten", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, dedupe.FixtureKey(2025, 3)), ShouldBeFalse)
			})
		})
	})
}

func TestBoundedDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper bounded to three keys", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for _, k := range []string{"a", "b", "c"} {
			So(d.SeenAndRecord(ctx, k), ShouldBeFalse)
		}

		Convey("When a fourth key is recorded", func() {
			So(d.SeenAndRecord(ctx, "d"), ShouldBeFalse)

			Convey("Then the oldest key is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "d"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})

		Convey("When the oldest key is unrecorded first", func() {
			d.Unrecord(ctx, "a")
			d.SeenAndRecord(ctx, "d")

			Convey("Then nothing else is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		Convey("When many keys are recorded", func() {
			const n = 1000
			for i := 0; i < n; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("fixture-%d", i))
			}

			Convey("Then none is evicted", func() {
				So(d.Size(), ShouldEqual, int64(n))
				So(d.SeenAndRecord(ctx, "fixture-0"), ShouldBeTrue)
			})
		})
	})
}

func TestDedupeConcurrency(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper shared by several goroutines", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(10_000))
		const goroutines = 10
		const perGoroutine = 100

		Convey("When each goroutine races on the same keys", func() {
			var wg sync.WaitGroup
			var mu sync.Mutex
			winners := 0
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < perGoroutine; i++ {
						if !d.SeenAndRecord(ctx, fmt.Sprintf("fixture-%d", i)) {
							mu.Lock()
							winners++
							mu.Unlock()
						}
					}
				}()
			}
			wg.Wait()

			Convey("Then every key is won exactly once", func() {
				So(winners, ShouldEqual, perGoroutine)
				So(d.Size(), ShouldEqual, int64(perGoroutine))
			})
		})
	})
}

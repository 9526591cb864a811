package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	service "github.com/jsmcel/androidfutbol5-sub000/internal/app"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/development"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func team(id, attr int) model.TeamMatchInput {
	squad := make([]model.PlayerSimAttrs, 11)
	for i := range squad {
		squad[i] = model.NewPlayerSimAttrs(id*100+i+1, fmt.Sprintf("P%d-%d", id, i+1), model.Uniform(attr))
	}
	return model.TeamMatchInput{TeamID: id, TeamName: fmt.Sprintf("Team %d", id), Squad: squad, Tactic: model.DefaultTactic()}
}

func fixture(id int64, home, away model.TeamMatchInput, seed int64) matchsim.MatchContext {
	return matchsim.MatchContext{FixtureID: id, Home: home, Away: away, Seed: seed}
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithWorkerCount(2))

		Convey("Then matchdays are refused", func() {
			_, err := svc.PlayMatchday(ctx, 1, []matchsim.MatchContext{fixture(1, team(1, 60), team(2, 60), 1)})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(errors.Is(svc.StartSeason(ctx, 2025, nil), service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("Then stats report it as stopped", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["workerCount"], ShouldEqual, 2)
		})

		Convey("Then stopping is harmless", func() {
			So(svc.Stop(ctx), ShouldBeNil)
		})
	})

	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(8))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(func() { _ = svc.Stop(ctx) })

		Convey("Then starting again is a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldEqual, true)
		})
	})
}

func TestService_PlayMatchday(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with four teams", t, func() {
		svc := service.New(service.WithWorkerCount(3), service.WithQueueSize(2), service.WithSeason(2025, 777))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(func() { _ = svc.Stop(ctx) })

		teams := []model.TeamMatchInput{team(1, 75), team(2, 60), team(3, 55), team(4, 70)}
		So(svc.StartSeason(ctx, 2025, teams), ShouldBeNil)

		fixtures := []matchsim.MatchContext{
			fixture(11, teams[0], teams[1], 101),
			fixture(12, teams[2], teams[3], 102),
		}

		Convey("When a matchday is played", func() {
			results, err := svc.PlayMatchday(ctx, 1, fixtures)
			So(err, ShouldBeNil)

			Convey("Then results come back in input order", func() {
				So(len(results), ShouldEqual, 2)
				So(results[0].FixtureID, ShouldEqual, int64(11))
				So(results[1].FixtureID, ShouldEqual, int64(12))
			})

			Convey("Then each result matches a direct simulation", func() {
				So(results[0], ShouldResemble, matchsim.Simulate(fixtures[0]))
				So(results[1], ShouldResemble, matchsim.Simulate(fixtures[1]))
			})

			Convey("Then the table counts one game per team", func() {
				table, err := svc.Standings(ctx)
				So(err, ShouldBeNil)
				So(len(table), ShouldEqual, 4)
				for _, row := range table {
					So(row.Played, ShouldEqual, 1)
				}
			})

			Convey("Then the fixture is stored", func() {
				rec, err := svc.Fixture(ctx, 12)
				So(err, ShouldBeNil)
				So(rec.Matchday, ShouldEqual, 1)
				So(rec.Result.HomeGoals, ShouldEqual, results[1].HomeGoals)
			})

			Convey("And the same fixture is played again", func() {
				_, err := svc.PlayMatchday(ctx, 2, fixtures[:1])

				Convey("Then it is rejected as a duplicate", func() {
					So(errors.Is(err, service.ErrDuplicateFixture), ShouldBeTrue)
					So(svc.GetStats()["playedFixtures"], ShouldEqual, int64(2))
				})
			})

			Convey("And a new season opens", func() {
				So(svc.StartSeason(ctx, 2026, teams), ShouldBeNil)

				Convey("Then the table and played fixtures are cleared", func() {
					table, err := svc.Standings(ctx)
					So(err, ShouldBeNil)
					So(table[0].Played, ShouldEqual, 0)
					So(svc.GetStats()["playedFixtures"], ShouldEqual, int64(0))
					_, err = svc.PlayMatchday(ctx, 1, fixtures)
					So(err, ShouldBeNil)
				})
			})

			Convey("And the next season has a different team list", func() {
				promoted := team(5, 58)
				So(svc.StartSeason(ctx, 2026, []model.TeamMatchInput{teams[0], teams[2], teams[3], promoted}), ShouldBeNil)

				Convey("Then only the new list appears in the table", func() {
					table, err := svc.Standings(ctx)
					So(err, ShouldBeNil)
					So(len(table), ShouldEqual, 4)
					for _, row := range table {
						So(row.TeamID, ShouldNotEqual, 2)
					}
				})
			})
		})

		Convey("When a batch mixes a new fixture with a played one", func() {
			_, err := svc.PlayMatchday(ctx, 1, fixtures[1:])
			So(err, ShouldBeNil)
			_, err = svc.PlayMatchday(ctx, 2, fixtures)

			Convey("Then nothing from the batch is played", func() {
				So(errors.Is(err, service.ErrDuplicateFixture), ShouldBeTrue)
				results, err := svc.PlayMatchday(ctx, 2, fixtures[:1])
				So(err, ShouldBeNil)
				So(results[0].FixtureID, ShouldEqual, int64(11))
			})
		})

		Convey("When a fixture has an empty roster", func() {
			bad := fixtures[0]
			bad.Away.Squad = nil
			_, err := svc.PlayMatchday(ctx, 1, []matchsim.MatchContext{fixtures[1], bad})

			Convey("Then the whole matchday is rejected", func() {
				So(errors.Is(err, matchsim.ErrEmptyRoster), ShouldBeTrue)
				So(svc.GetStats()["playedFixtures"], ShouldEqual, int64(0))
			})
		})

		Convey("When a fixture carries no seed", func() {
			unseeded := fixture(20, teams[0], teams[3], 0)
			results, err := svc.PlayMatchday(ctx, 1, []matchsim.MatchContext{unseeded})

			Convey("Then the season seed is used", func() {
				So(err, ShouldBeNil)
				So(results[0].Seed, ShouldEqual, int64(777))
			})
		})

		Convey("When a matchday is larger than the queue", func() {
			var many []matchsim.MatchContext
			for i := int64(0); i < 12; i++ {
				many = append(many, fixture(100+i, teams[i%2], teams[2+i%2], i+1))
			}
			results, err := svc.PlayMatchday(ctx, 1, many)

			Convey("Then every fixture is still played", func() {
				So(err, ShouldBeNil)
				for i, r := range results {
					So(r.FixtureID, ShouldEqual, many[i].FixtureID)
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.PlayMatchday(cctx, 1, fixtures)

			Convey("Then the matchday fails and can be retried", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				_, err = svc.PlayMatchday(ctx, 1, fixtures)
				So(err, ShouldBeNil)
			})
		})
	})
}

func roster(teamID, n int) []development.DevelopmentPlayer {
	out := make([]development.DevelopmentPlayer, n)
	for i := range out {
		out[i] = development.DevelopmentPlayer{
			ID:        teamID*100 + i + 1,
			Name:      fmt.Sprintf("Player %d-%d", teamID, i+1),
			BirthYear: 2025 - (18 + i*2),
			Attrs:     model.Uniform(40 + i*3),
		}
	}
	return out
}

func TestService_EndSeason(t *testing.T) {
	ctx := context.Background()

	Convey("Given the academy intake policy", t, func() {
		Convey("Then average staff yields two players", func() {
			So(service.YouthIntake(development.DefaultStaff()), ShouldEqual, 2)
		})

		Convey("Then a strong academy with a good scout yields three", func() {
			staff := development.DefaultStaff()
			staff.Academy, staff.Scout = 80, 70
			So(service.YouthIntake(staff), ShouldEqual, 3)
			staff.Scout = 69
			So(service.YouthIntake(staff), ShouldEqual, 2)
		})
	})

	Convey("Given three rosters and a managed team with a strong academy", t, func() {
		svc := service.New()
		strong := development.DefaultContext()
		strong.Staff.Academy, strong.Staff.Scout = 90, 80
		end := service.SeasonEnd{
			SeasonStartYear: 2025,
			Seed:            42,
			Rosters:         map[int][]development.DevelopmentPlayer{1: roster(1, 11), 2: roster(2, 11), 3: roster(3, 11)},
			Contexts:        map[int]development.DevelopmentContext{1: strong},
			ManagedTeamID:   1,
		}

		Convey("When the season ends", func() {
			report, err := svc.EndSeason(ctx, end)
			So(err, ShouldBeNil)

			Convey("Then every roster matches a direct development pass", func() {
				So(report.Rosters[1], ShouldResemble, development.ApplySeasonGrowth(end.Rosters[1], 2025, 42, strong))
				So(report.Rosters[2], ShouldResemble, development.ApplySeasonGrowth(end.Rosters[2], 2025, 42, development.DefaultContext()))
			})

			Convey("Then every player is classified once", func() {
				So(report.Improved+report.Declined+report.Unchanged+report.Retired, ShouldEqual, 33)
				So(report.Retired, ShouldBeGreaterThan, 0)
			})

			Convey("Then the managed team receives its intake", func() {
				So(len(report.Youth), ShouldEqual, 3)
				for _, y := range report.Youth {
					So(y.TeamSlotID, ShouldEqual, 1)
				}
			})

			Convey("And it ends again from the same input", func() {
				again, err := svc.EndSeason(ctx, end)
				So(err, ShouldBeNil)

				Convey("Then the outcome is identical apart from the run id", func() {
					So(again.Rosters, ShouldResemble, report.Rosters)
					So(again.Youth, ShouldResemble, report.Youth)
					So(again.RunID, ShouldNotEqual, report.RunID)
				})
			})
		})

		Convey("When no team is managed", func() {
			end.ManagedTeamID = 0
			report, err := svc.EndSeason(ctx, end)

			Convey("Then no youth is generated", func() {
				So(err, ShouldBeNil)
				So(report.Youth, ShouldBeEmpty)
			})
		})

		Convey("When the managed team id is negative", func() {
			end.ManagedTeamID = -4
			_, err := svc.EndSeason(ctx, end)

			Convey("Then the academy request is rejected", func() {
				So(errors.Is(err, development.ErrInvalidTeamSlot), ShouldBeTrue)
			})
		})
	})
}

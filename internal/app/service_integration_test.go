package service_test

import (
	"context"
	"testing"

	service "github.com/jsmcel/androidfutbol5-sub000/internal/app"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func league(n int) []model.TeamMatchInput {
	teams := make([]model.TeamMatchInput, n)
	for i := range teams {
		teams[i] = team(i+1, 50+i*4)
	}
	return teams
}

func TestDoubleRoundRobin(t *testing.T) {
	Convey("Given six teams", t, func() {
		calendar := service.DoubleRoundRobin(league(6), 9)

		Convey("Then there are ten matchdays of three fixtures", func() {
			So(len(calendar), ShouldEqual, 10)
			for _, md := range calendar {
				So(len(md), ShouldEqual, 3)
			}
		})

		Convey("Then every ordered pairing happens exactly once", func() {
			pairs := make(map[[2]int]int)
			ids := make(map[int64]bool)
			for _, md := range calendar {
				playing := make(map[int]bool)
				for _, mc := range md {
					So(mc.Home.TeamID, ShouldNotEqual, mc.Away.TeamID)
					So(playing[mc.Home.TeamID] || playing[mc.Away.TeamID], ShouldBeFalse)
					playing[mc.Home.TeamID], playing[mc.Away.TeamID] = true, true
					pairs[[2]int{mc.Home.TeamID, mc.Away.TeamID}]++
					So(ids[mc.FixtureID], ShouldBeFalse)
					ids[mc.FixtureID] = true
					So(mc.Seed, ShouldEqual, int64(9))
				}
			}
			So(len(pairs), ShouldEqual, 30)
			for _, n := range pairs {
				So(n, ShouldEqual, 1)
			}
		})
	})

	Convey("Given five teams", t, func() {
		calendar := service.DoubleRoundRobin(league(5), 1)

		Convey("Then one team rests each matchday", func() {
			So(len(calendar), ShouldEqual, 10)
			for _, md := range calendar {
				So(len(md), ShouldEqual, 2)
			}
		})
	})

	Convey("Given a single team", t, func() {
		Convey("Then there is nothing to schedule", func() {
			So(service.DoubleRoundRobin(league(1), 1), ShouldBeEmpty)
		})
	})
}

func TestServiceIntegration(t *testing.T) {
	ctx := context.Background()

	Convey("Given a full season for eight teams", t, func() {
		teams := league(8)
		calendar := service.DoubleRoundRobin(teams, 2025)

		play := func() ([][]matchsim.MatchResult, []int) {
			svc := service.New(service.WithWorkerCount(4), service.WithQueueSize(3), service.WithSeason(2025, 2025))
			So(svc.Start(ctx), ShouldBeNil)
			defer func() { So(svc.Stop(ctx), ShouldBeNil) }()
			So(svc.StartSeason(ctx, 2025, teams), ShouldBeNil)

			var all [][]matchsim.MatchResult
			for md, fixtures := range calendar {
				results, err := svc.PlayMatchday(ctx, md+1, fixtures)
				So(err, ShouldBeNil)
				all = append(all, results)
			}
			table, err := svc.Standings(ctx)
			So(err, ShouldBeNil)
			order := make([]int, len(table))
			points, played, goalsFor, goalsAgainst, wins, draws := 0, 0, 0, 0, 0, 0
			for i, row := range table {
				order[i] = row.TeamID
				So(row.Rank, ShouldEqual, i+1)
				So(row.Played, ShouldEqual, 14)
				So(row.Won+row.Drawn+row.Lost, ShouldEqual, row.Played)
				So(row.Points, ShouldEqual, 3*row.Won+row.Drawn)
				points += row.Points
				played += row.Played
				goalsFor += row.GoalsFor
				goalsAgainst += row.GoalsAgainst
				wins += row.Won
				draws += row.Drawn
				if i > 0 {
					So(row.Points, ShouldBeLessThanOrEqualTo, table[i-1].Points)
				}
			}
			So(played, ShouldEqual, 2*56)
			So(goalsFor, ShouldEqual, goalsAgainst)
			So(points, ShouldEqual, 3*wins+draws)
			return all, order
		}

		Convey("When the season is played twice", func() {
			first, firstOrder := play()
			second, secondOrder := play()

			Convey("Then both runs are identical regardless of worker scheduling", func() {
				So(second, ShouldResemble, first)
				So(secondOrder, ShouldResemble, firstOrder)
			})
		})
	})
}

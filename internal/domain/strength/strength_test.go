package strength_test

import (
	"math"
	"testing"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/strength"
	. "github.com/smartystreets/goconvey/convey"
)

func squadOf(attr, form, morale int) model.TeamMatchInput {
	squad := make([]model.PlayerSimAttrs, 11)
	for i := range squad {
		squad[i] = model.NewPlayerSimAttrs(i+1, "", model.Uniform(attr))
		squad[i].Form = form
		squad[i].Morale = morale
	}
	return model.TeamMatchInput{TeamID: 1, Squad: squad, Tactic: model.DefaultTactic()}
}

func TestCalculate(t *testing.T) {
	Convey("Given an eleven with uniform attributes", t, func() {
		Convey("When form and morale are neutral", func() {
			Convey("Then strength equals the attribute level", func() {
				So(strength.Calculate(squadOf(65, 50, 50)), ShouldAlmostEqual, 65.0, 1e-9)
				So(strength.Calculate(squadOf(30, 50, 50)), ShouldAlmostEqual, 30.0, 1e-9)
			})
		})

		Convey("When players are built without explicit form or morale", func() {
			squad := make([]model.PlayerSimAttrs, 11)
			for i := range squad {
				squad[i] = model.NewPlayerSimAttrs(i+1, "", model.Uniform(70))
			}
			built := model.TeamMatchInput{TeamID: 1, Squad: squad}

			Convey("Then they rate as neutral, not as unfit", func() {
				So(strength.Calculate(built), ShouldAlmostEqual, strength.Calculate(squadOf(70, 50, 50)), 1e-9)
				So(strength.Calculate(built), ShouldAlmostEqual, 70.0, 1e-9)
			})
		})

		Convey("When morale rises from 50 to 80", func() {
			neutral := strength.Calculate(squadOf(70, 50, 50))
			high := strength.Calculate(squadOf(70, 50, 80))

			Convey("Then strength rises by exactly 0.6", func() {
				So(math.Abs((high-neutral)-0.6), ShouldBeLessThan, 1e-9)
			})
		})

		Convey("When form improves", func() {
			So(strength.Calculate(squadOf(70, 70, 50)), ShouldBeGreaterThan, strength.Calculate(squadOf(70, 50, 50)))
		})

		Convey("When a single attribute improves", func() {
			base := squadOf(60, 50, 50)
			better := squadOf(60, 50, 50)
			better.Squad[10].Attrs.Finishing = 90

			Convey("Then strength does not decrease", func() {
				So(strength.Calculate(better), ShouldBeGreaterThan, strength.Calculate(base))
			})
		})

		Convey("When the tactic or venue would differ", func() {
			a := squadOf(70, 50, 50)
			b := squadOf(70, 50, 50)
			b.Tactic.PlayStyle = model.StyleAttacking

			Convey("Then strength only reflects the squad", func() {
				So(strength.Calculate(a), ShouldEqual, strength.Calculate(b))
			})
		})
	})

	Convey("Given degenerate rosters", t, func() {
		Convey("Then an empty roster is neutral", func() {
			So(strength.Calculate(model.TeamMatchInput{}), ShouldEqual, strength.Neutral)
		})

		Convey("Then short and long rosters stay in range", func() {
			for _, n := range []int{1, 2, 3, 7, 18, 25} {
				team := squadOf(80, 50, 50)
				squad := make([]model.PlayerSimAttrs, n)
				for i := range squad {
					squad[i] = team.Squad[0]
				}
				team.Squad = squad
				v := strength.Calculate(team)
				So(v, ShouldBeBetweenOrEqual, strength.Min, strength.Max)
			}
		})

		Convey("Then out of range attributes are clamped first", func() {
			team := squadOf(70, 50, 50)
			team.Squad[3].Attrs.Tackling = 500
			team.Squad[3].Morale = -300
			v := strength.Calculate(team)
			So(v, ShouldBeBetweenOrEqual, strength.Min, strength.Max)
		})
	})
}

func TestSplitLines(t *testing.T) {
	Convey("Given a standard eleven", t, func() {
		l := strength.SplitLines(11)

		Convey("Then it maps to 1-4-4-2", func() {
			So(l.GK, ShouldResemble, [2]int{0, 1})
			So(l.Defence, ShouldResemble, [2]int{1, 5})
			So(l.Midfield, ShouldResemble, [2]int{5, 9})
			So(l.Attack, ShouldResemble, [2]int{9, 11})
		})
	})

	Convey("Given custom line weights", t, func() {
		calc := strength.New(strength.WithLineWeights(1, 0, 0, 0))
		team := squadOf(50, 50, 50)
		team.Squad[0].Attrs = model.Uniform(90)

		Convey("Then only the goalkeeper counts", func() {
			So(calc.Calculate(team), ShouldAlmostEqual, 90.0, 1e-9)
		})
	})
}

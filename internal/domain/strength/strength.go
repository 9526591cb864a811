// Package strength turns a roster into a single team-quality number.
//
// The value is built from positional line ratings (goalkeeper, defence,
// midfield, attack) plus a squad-wide form and morale adjustment. Venue is
// deliberately absent: home advantage belongs to the match simulator.
package strength

import (
	"math"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
)

// Default strength configuration constants.
const (
	defaultGKWeight  = 0.15
	defaultDefWeight = 0.30
	defaultMidWeight = 0.30
	defaultFwdWeight = 0.25

	// Share of outfield players assigned to defence and midfield; the rest attack.
	defenceShare  = 0.4
	midfieldShare = 0.4

	playerFormFactor = 0.05
	squadFormFactor  = 0.02
	moraleFactor     = 0.02

	// Neutral is returned for an empty roster and for empty lines.
	Neutral = 50.0
	Min     = 10.0
	Max     = 99.0
)

// Calculator computes team strength. The zero value is not usable; use New.
type Calculator struct {
	gk, def, mid, fwd float64
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithLineWeights overrides the goalkeeper, defence, midfield and attack weights.
// Weights are normalised so they sum to one; non-positive sets are ignored.
func WithLineWeights(gk, def, mid, fwd float64) Option {
	return func(c *Calculator) {
		sum := gk + def + mid + fwd
		if gk < 0 || def < 0 || mid < 0 || fwd < 0 || sum <= 0 {
			return
		}
		c.gk, c.def, c.mid, c.fwd = gk/sum, def/sum, mid/sum, fwd/sum
	}
}

// New creates a Calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		gk:  defaultGKWeight,
		def: defaultDefWeight,
		mid: defaultMidWeight,
		fwd: defaultFwdWeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = New() //nolint:gochecknoglobals // stateless default

// Calculate returns the strength of team using the default weights.
func Calculate(team model.TeamMatchInput) float64 {
	return defaultCalculator.Calculate(team)
}

// Calculate returns a value in [Min, Max]. It is monotonic non-decreasing in
// every attribute, in form and in morale.
func (c *Calculator) Calculate(team model.TeamMatchInput) float64 {
	squad := team.NormalizedSquad()
	if len(squad) == 0 {
		return Neutral
	}

	lines := SplitLines(len(squad))
	gk := lineScore(squad[lines.GK[0]:lines.GK[1]], goalkeeperScore)
	def := lineScore(squad[lines.Defence[0]:lines.Defence[1]], defenderScore)
	mid := lineScore(squad[lines.Midfield[0]:lines.Midfield[1]], midfielderScore)
	fwd := lineScore(squad[lines.Attack[0]:lines.Attack[1]], forwardScore)

	base := gk*c.gk + def*c.def + mid*c.mid + fwd*c.fwd
	return clamp(base+squadBonus(squad), Min, Max)
}

// Lines holds half-open [start,end) index ranges into a squad.
type Lines struct {
	GK, Defence, Midfield, Attack [2]int
}

// SplitLines maps a squad of size n onto lines: index 0 keeps goal, the
// outfield is split 4:4:2. A standard eleven gives 1/4/4/2.
func SplitLines(n int) Lines {
	if n <= 0 {
		return Lines{}
	}
	out := n - 1
	nDef := int(math.Round(float64(out) * defenceShare))
	nMid := int(math.Round(float64(out) * midfieldShare))
	if nDef+nMid > out {
		nMid = out - nDef
	}
	return Lines{
		GK:       [2]int{0, 1},
		Defence:  [2]int{1, 1 + nDef},
		Midfield: [2]int{1 + nDef, 1 + nDef + nMid},
		Attack:   [2]int{1 + nDef + nMid, n},
	}
}

// squadBonus averages the runtime form and morale adjustment over the squad.
func squadBonus(squad []model.PlayerSimAttrs) float64 {
	total := 0.0
	for _, p := range squad {
		total += float64(p.Form-model.NeutralRating)*squadFormFactor +
			float64(p.Morale-model.NeutralRating)*moraleFactor
	}
	return total / float64(len(squad))
}

func lineScore(players []model.PlayerSimAttrs, score func(model.PlayerSimAttrs) float64) float64 {
	if len(players) == 0 {
		return Neutral
	}
	total := 0.0
	for _, p := range players {
		total += score(p)
	}
	return total / float64(len(players))
}

func formFactor(p model.PlayerSimAttrs) float64 {
	return float64(p.Form-model.NeutralRating) * playerFormFactor
}

func goalkeeperScore(p model.PlayerSimAttrs) float64 {
	a := p.Attrs
	return float64(a.Goalkeeping)*0.6 + float64(a.Stamina)*0.2 + float64(a.Quality)*0.2 + formFactor(p)
}

func defenderScore(p model.PlayerSimAttrs) float64 {
	a := p.Attrs
	return float64(a.Tackling)*0.4 + float64(a.Quality)*0.3 + float64(a.Speed)*0.2 +
		float64(a.Stamina)*0.1 + formFactor(p)
}

func midfielderScore(p model.PlayerSimAttrs) float64 {
	a := p.Attrs
	return float64(a.Passing)*0.35 + float64(a.Quality)*0.3 + float64(a.Stamina)*0.2 +
		float64(a.ShotPower)*0.15 + formFactor(p)
}

func forwardScore(p model.PlayerSimAttrs) float64 {
	a := p.Attrs
	return float64(a.Finishing)*0.4 + float64(a.Dribbling)*0.25 + float64(a.Quality)*0.2 +
		float64(a.ShotPower)*0.15 + formFactor(p)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

package matchsim

import (
	"math"
	"math/rand"
	"sort"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/prng"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/strength"
)

// Default simulator configuration constants.
const (
	defaultHomeAdvantage = 5.0
	defaultVARReview     = 0.18
	defaultVARDisallow   = 0.38
	defaultInjuryRate    = 0.08
	defaultMaxGoals      = 9

	regulationMinutes = 90

	// Lambda mapping: base rate grows linearly with normalised strength and is
	// scaled by the exponential of the strength gap.
	baseRate       = 0.3
	rateSpan       = 1.8
	relativeFactor = 0.9

	// MinLambda and MaxLambda bound every scoring rate.
	MinLambda = 0.05
	MaxLambda = 6.0

	expulsionPenalty = 0.2

	// Tactical edge in strength points.
	zonalMarkingEdge = 0.3
	counterEdge      = 0.3
	counterThreshold = 60
	longBallEdge     = 0.2
	hardFoulsEdge    = 0.2
)

// Simulator plays fixtures. It holds configuration only and is safe for
// concurrent use.
type Simulator struct {
	calc          *strength.Calculator
	homeAdvantage float64
	varReview     float64
	varDisallow   float64
	injuryRate    float64
	maxGoals      int
	directRed     [model.MaxFouls + 1]float64
}

// New creates a Simulator with configuration options.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		calc:          strength.New(),
		homeAdvantage: defaultHomeAdvantage,
		varReview:     defaultVARReview,
		varDisallow:   defaultVARDisallow,
		injuryRate:    defaultInjuryRate,
		maxGoals:      defaultMaxGoals,
		directRed:     defaultDirectRedRates,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSimulator = New() //nolint:gochecknoglobals // stateless default

// Simulate plays mc with the default configuration.
func Simulate(mc MatchContext) MatchResult { //nolint:gocritic // hugeParam: context is a value by contract
	return defaultSimulator.Simulate(mc)
}

// ApplyExpulsionPenalty scales a scoring rate down by 20% per red card.
// The result never drops below MinLambda unless lambda already was lower,
// and it never exceeds lambda.
func ApplyExpulsionPenalty(lambda float64, redCards int) float64 {
	if redCards <= 0 {
		return lambda
	}
	floor := math.Min(lambda, MinLambda)
	return math.Max(floor, lambda*(1-expulsionPenalty*float64(redCards)))
}

// Simulate plays one fixture. It never fails: out-of-range inputs are clamped
// and an empty roster simply produces no player events.
func (s *Simulator) Simulate(mc MatchContext) MatchResult { //nolint:gocritic // hugeParam: context is a value by contract
	home := newSideState(mc.Home)
	away := newSideState(mc.Away)
	fixture := prng.Salt(mc.FixtureID)

	homeStrength := s.calc.Calculate(mc.Home)
	awayStrength := s.calc.Calculate(mc.Away)
	effHome := homeStrength + tacticalEdge(mc.Home.Tactic)
	effAway := awayStrength + tacticalEdge(mc.Away.Tactic)
	if !mc.Neutral {
		effHome += s.homeAdvantage
	}

	homeLambda := scoringRate(effHome, effAway, mc.Home.Tactic, mc.Away.Tactic)
	awayLambda := scoringRate(effAway, effHome, mc.Away.Tactic, mc.Home.Tactic)
	homePace, awayPace := paceFactors(mc.Home.Tactic.TimeWasting, mc.Away.Tactic.TimeWasting)
	homeLambda = clampLambda(homeLambda * homePace)
	awayLambda = clampLambda(awayLambda * awayPace)

	tl := &timeline{}

	playDiscipline(prng.New(mc.Seed, prng.SaltDiscipline, fixture), s.directRed, home, away, tl)
	s.playInjuries(prng.New(mc.Seed, prng.SaltInjuries, fixture), home, away, tl)

	goalsRNG := prng.New(mc.Seed, prng.SaltGoals, fixture)
	home.goalMinutes = s.goalMinutes(goalsRNG, homeLambda, home.redMinutes)
	away.goalMinutes = s.goalMinutes(goalsRNG, awayLambda, away.redMinutes)

	scorers := prng.New(mc.Seed, prng.SaltScorers, fixture)
	varRNG := prng.New(mc.Seed, prng.SaltVAR, fixture)
	homeGoals, homeReviews, homeDisallowed := s.resolveGoals(scorers, varRNG, home, tl)
	awayGoals, awayReviews, awayDisallowed := s.resolveGoals(scorers, varRNG, away, tl)

	wasteBias := playTimeWasting(prng.New(mc.Seed, prng.SaltTimeWasting, fixture), home, away, tl)

	provisional := len(home.goalMinutes) + len(away.goalMinutes)
	first, second := addedTime(
		prng.New(mc.Seed, prng.SaltAddedTime, fixture),
		tl.count(EventYellowCard), homeReviews+awayReviews, provisional, tl.count(EventInjury), wasteBias,
	)

	sort.SliceStable(tl.events, func(i, j int) bool { return tl.events[i].Minute < tl.events[j].Minute })

	return MatchResult{
		FixtureID:           mc.FixtureID,
		HomeGoals:           homeGoals,
		AwayGoals:           awayGoals,
		Events:              tl.events,
		FirstHalfAddedTime:  first,
		SecondHalfAddedTime: second,
		VARDisallowedHome:   homeDisallowed,
		VARDisallowedAway:   awayDisallowed,
		HomeStrength:        homeStrength,
		AwayStrength:        awayStrength,
		HomeLambda:          homeLambda,
		AwayLambda:          awayLambda,
		Seed:                mc.Seed,
	}
}

// tacticalEdge is the strength bonus a side's tactical switches are worth.
// Play style, pressing and time wasting act on the scoring rate instead.
func tacticalEdge(t model.TacticParams) float64 {
	edge := 0.0
	if t.Marking != model.MarkingMan {
		edge += zonalMarkingEdge
	}
	if t.CounterPct > counterThreshold {
		edge += counterEdge
	}
	if t.Clearances == model.ClearancesLong {
		edge += longBallEdge
	}
	if t.FoulLevel() == model.MaxFouls {
		edge += hardFoulsEdge
	}
	return edge
}

// scoringRate maps an effective strength and the opponent's onto a Poisson mean.
func scoringRate(own, opp float64, tactic, oppTactic model.TacticParams) float64 {
	span := strength.Max - strength.Min
	norm := math.Max(0, (own-strength.Min)/span)
	rate := (baseRate + rateSpan*norm) * math.Exp(relativeFactor*(own-opp)/span)
	return clampLambda(rate * attackFactor(tactic) * concedeFactor(oppTactic))
}

func attackFactor(t model.TacticParams) float64 {
	f := 1.0
	switch t.PlayStyle {
	case model.StyleAttacking:
		f *= 1.08
	case model.StyleDefensive:
		f *= 0.9
	}
	switch t.Pressing {
	case model.PressingHigh:
		f *= 1.03
	case model.PressingLow:
		f *= 0.98
	}
	return f
}

// concedeFactor is how the opponent's shape opens or closes the game.
func concedeFactor(opp model.TacticParams) float64 {
	switch opp.PlayStyle {
	case model.StyleAttacking:
		return 1.04
	case model.StyleDefensive:
		return 0.95
	default:
		return 1.0
	}
}

func paceFactors(homeWastes, awayWastes bool) (float64, float64) {
	switch {
	case homeWastes && awayWastes:
		return 0.82, 0.82
	case homeWastes:
		return 0.92, 0.88
	case awayWastes:
		return 0.88, 0.92
	default:
		return 1, 1
	}
}

func clampLambda(l float64) float64 {
	return math.Max(MinLambda, math.Min(MaxLambda, l))
}

// goalMinutes draws provisional goal minutes. The match is cut into segments
// at each of the side's red cards and every segment scores at the penalised rate.
func (s *Simulator) goalMinutes(r *rand.Rand, lambda float64, reds []int) []int {
	var minutes []int
	start := 1
	for i := 0; i <= len(reds); i++ {
		end := regulationMinutes
		if i < len(reds) {
			end = reds[i]
		}
		if end < start {
			continue
		}
		length := end - start + 1
		rate := ApplyExpulsionPenalty(lambda, i) * float64(length) / regulationMinutes
		for n := poisson(r, rate); n > 0; n-- {
			minutes = append(minutes, prng.Between(r, start, end))
		}
		start = end + 1
	}
	sort.Ints(minutes)
	if len(minutes) > s.maxGoals {
		minutes = minutes[:s.maxGoals]
	}
	return minutes
}

// resolveGoals assigns scorers and runs VAR over a side's provisional goals.
// It returns the goals that stand, the VAR reviews and the goals VAR ruled out.
func (s *Simulator) resolveGoals(scorers, varRNG *rand.Rand, side *sideState, tl *timeline) (goals, reviews, disallowed int) {
	for _, minute := range side.goalMinutes {
		idx := side.pickScorer(scorers, minute)
		id, name := side.player(idx)

		reviewed := varRNG.Float64() < s.varReview
		ruledOut := varRNG.Float64() < s.varDisallow
		if reviewed {
			reviews++
		}
		if reviewed && ruledOut {
			disallowed++
			tl.add(MatchEvent{
				Minute:      minute,
				Type:        EventVARDisallowed,
				TeamID:      side.team.TeamID,
				PlayerID:    id,
				PlayerName:  name,
				Description: describe("Goal by %s disallowed after VAR review", name, side.team.TeamName),
			})
			continue
		}
		goals++
		tl.add(MatchEvent{
			Minute:      minute,
			Type:        EventGoal,
			TeamID:      side.team.TeamID,
			PlayerID:    id,
			PlayerName:  name,
			Description: describe("Goal by %s", name, side.team.TeamName),
		})
	}
	return goals, reviews, disallowed
}

// playTimeWasting emits TIME_WASTING events for sides that run the clock down
// and returns the added-time bias they cause.
func playTimeWasting(r *rand.Rand, home, away *sideState, tl *timeline) int {
	bias := 0
	for _, side := range []*sideState{home, away} {
		if !side.team.Tactic.TimeWasting {
			continue
		}
		n := prng.Between(r, 1, 3)
		for i := 0; i < n; i++ {
			tl.add(MatchEvent{
				Minute:      prng.Between(r, 70, regulationMinutes),
				Type:        EventTimeWasting,
				TeamID:      side.team.TeamID,
				Description: describe("Time wasting by %s", side.team.TeamName, ""),
			})
		}
		bias += n
	}
	if bias > 4 {
		bias = 4
	}
	return bias
}

// addedTime derives stoppage time for each half from what happened on the pitch.
func addedTime(r *rand.Rand, yellows, reviews, goals, injuries, wasteBias int) (int, int) {
	base := float64(yellows)/3 + float64(reviews) + float64(goals)/3 + float64(injuries) + float64(wasteBias)
	half := int(base / 2)
	first := clampInt(half+prng.Between(r, 1, 3), 1, 6)
	second := clampInt(half+prng.Between(r, 2, 5), 2, 10)
	return first, second
}

// poisson draws from Poisson(lambda) with Knuth's multiplication method.
func poisson(r *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := r.Float64()
	for p > limit {
		k++
		p *= r.Float64()
	}
	return k
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package development

import (
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/prng"
)

// Default engine configuration constants.
const (
	defaultRetirementAge      = 37
	defaultEarlyRetirementAge = 35
	defaultEarlyRetirementVE  = 30
	defaultYouthMinAge        = 16
	defaultYouthMaxAge        = 18

	primeAge    = 24
	veteranAge  = 31
	declineAge  = 33
	lateCareer  = 34
	youngCoach  = 21
	academyTeen = 20
)

// Engine applies season-end development. It holds configuration only and is
// safe for concurrent use.
type Engine struct {
	retirementAge      int
	earlyRetirementAge int
	earlyRetirementVE  int
	youthMinAge        int
	youthMaxAge        int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRetirementAge sets the age at which every player retires.
func WithRetirementAge(age int) Option {
	return func(e *Engine) {
		if age > 0 {
			e.retirementAge = age
		}
	}
}

// WithEarlyRetirement retires players from age on whose speed is at or below speed.
func WithEarlyRetirement(age, speed int) Option {
	return func(e *Engine) {
		if age > 0 {
			e.earlyRetirementAge = age
			e.earlyRetirementVE = speed
		}
	}
}

// WithYouthAgeRange sets the age range of generated academy players.
func WithYouthAgeRange(minAge, maxAge int) Option {
	return func(e *Engine) {
		if minAge > 0 && maxAge >= minAge {
			e.youthMinAge = minAge
			e.youthMaxAge = maxAge
		}
	}
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		retirementAge:      defaultRetirementAge,
		earlyRetirementAge: defaultEarlyRetirementAge,
		earlyRetirementVE:  defaultEarlyRetirementVE,
		youthMinAge:        defaultYouthMinAge,
		youthMaxAge:        defaultYouthMaxAge,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New() //nolint:gochecknoglobals // stateless default

// ApplySeasonGrowth evolves players with the default engine.
func ApplySeasonGrowth(players []DevelopmentPlayer, seasonStartYear int, seed int64, dc DevelopmentContext) []DevelopmentPlayer {
	return defaultEngine.ApplySeasonGrowth(players, seasonStartYear, seed, dc)
}

// GenerateYouthPlayers creates an academy intake with the default engine.
func GenerateYouthPlayers(teamSlotID, count, seasonStartYear int, seed int64, dc DevelopmentContext) []YouthPlayer {
	return defaultEngine.GenerateYouthPlayers(teamSlotID, count, seasonStartYear, seed, dc)
}

// ApplySeasonGrowth returns a new slice with every player evolved by one season.
// The input is never modified. Each player draws from its own stream derived
// from seed and its id, so results do not depend on roster order.
func (e *Engine) ApplySeasonGrowth(players []DevelopmentPlayer, seasonStartYear int, seed int64, dc DevelopmentContext) []DevelopmentPlayer {
	dc.Staff = dc.Staff.normalize()
	out := make([]DevelopmentPlayer, len(players))
	for i, p := range players {
		out[i] = e.evolve(p, seasonStartYear, seed, dc)
	}
	return out
}

func (e *Engine) evolve(p DevelopmentPlayer, year int, seed int64, dc DevelopmentContext) DevelopmentPlayer {
	if p.Status == StatusRetired {
		return p
	}
	p.Attrs = p.Attrs.Clamp()
	age := p.Age(year)
	if e.mustRetire(age, p.Attrs) {
		p.Status = StatusRetired
		return p
	}

	r := prng.New(seed, prng.SaltGrowth, prng.Salt(int64(p.ID)))
	keeper := p.IsGoalkeeper()
	switch {
	case age < primeAge:
		p.Attrs = growYoung(r, p.Attrs, age, keeper, dc)
	case age < veteranAge:
		p.Attrs = growPrime(r, p.Attrs, keeper, dc)
	default:
		p.Attrs = declineVeteran(r, p.Attrs, age, dc)
	}
	return p
}

func (e *Engine) mustRetire(age int, a model.Attributes) bool {
	if age >= e.retirementAge {
		return true
	}
	return age >= e.earlyRetirementAge && a.Speed <= e.earlyRetirementVE
}

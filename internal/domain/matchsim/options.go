package matchsim

import (
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/strength"
)

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithStrengthCalculator sets the calculator used to rate both squads.
func WithStrengthCalculator(c *strength.Calculator) Option {
	return func(s *Simulator) {
		if c != nil {
			s.calc = c
		}
	}
}

// WithHomeAdvantage sets the strength points added to the home side.
func WithHomeAdvantage(points float64) Option {
	return func(s *Simulator) {
		if points >= 0 {
			s.homeAdvantage = points
		}
	}
}

// WithVARRates sets the per-goal review probability and the probability
// that a reviewed goal is disallowed.
func WithVARRates(review, disallow float64) Option {
	return func(s *Simulator) {
		if validProbability(review) && validProbability(disallow) {
			s.varReview = review
			s.varDisallow = disallow
		}
	}
}

// WithInjuryRate sets the expected injuries per side per match.
func WithInjuryRate(rate float64) Option {
	return func(s *Simulator) {
		if validProbability(rate) {
			s.injuryRate = rate
		}
	}
}

// WithMaxGoals caps the goals a side can score.
func WithMaxGoals(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.maxGoals = n
		}
	}
}

// WithDirectRedRates sets the expected straight reds per side per match for
// each foul level. Negative rates are rejected.
func WithDirectRedRates(rates [model.MaxFouls + 1]float64) Option {
	return func(s *Simulator) {
		for _, r := range rates {
			if r < 0 {
				return
			}
		}
		s.directRed = rates
	}
}

func validProbability(p float64) bool { return p >= 0 && p <= 1 }

// Package matchsim plays a single fixture as a seeded stochastic process.
//
// A simulation is a pure function of its MatchContext: the same context
// (seed and fixture id included) always yields the same MatchResult.
package matchsim

import "github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"

// EventType classifies a match event.
type EventType string

// Event types emitted by the simulator.
const (
	EventGoal          EventType = "GOAL"
	EventYellowCard    EventType = "YELLOW_CARD"
	EventRedCard       EventType = "RED_CARD"
	EventInjury        EventType = "INJURY"
	EventVARDisallowed EventType = "VAR_DISALLOWED"
	EventTimeWasting   EventType = "TIME_WASTING"
)

// RedReason tells how a player came to be sent off.
type RedReason string

// Dismissal kinds carried by RED_CARD events.
const (
	RedSecondYellow RedReason = "SECOND_YELLOW"
	RedStraight     RedReason = "STRAIGHT_RED"
)

// MatchEvent is one entry of the match timeline.
type MatchEvent struct {
	Minute     int
	Type       EventType
	TeamID     int
	PlayerID   int // 0 when the event is not tied to a player
	PlayerName string
	// InjuryWeeks is set for INJURY events only.
	InjuryWeeks int
	// RedReason is set for RED_CARD events only.
	RedReason   RedReason
	Description string
}

// MatchContext is the full input of one simulation.
type MatchContext struct {
	FixtureID int64
	Home      model.TeamMatchInput
	Away      model.TeamMatchInput
	Seed      int64
	// Neutral disables home advantage.
	Neutral bool
}

// MatchResult is the outcome of one simulation.
type MatchResult struct {
	FixtureID int64
	HomeGoals int
	AwayGoals int
	// Events are ordered by non-decreasing minute.
	Events              []MatchEvent
	FirstHalfAddedTime  int
	SecondHalfAddedTime int
	// Goals each side had ruled out by VAR.
	VARDisallowedHome int
	VARDisallowedAway int

	HomeStrength float64
	AwayStrength float64
	HomeLambda   float64
	AwayLambda   float64
	Seed         int64
}

// Count returns the number of events of type t, optionally limited to teamID (0 = both sides).
func (r MatchResult) Count(t EventType, teamID int) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t && (teamID == 0 || e.TeamID == teamID) {
			n++
		}
	}
	return n
}

// Cards splits the disciplinary events into yellows, second-yellow dismissals
// and straight reds.
func (r MatchResult) Cards() (yellow, secondYellow, straightRed int) {
	for _, e := range r.Events {
		switch {
		case e.Type == EventYellowCard:
			yellow++
		case e.Type == EventRedCard && e.RedReason == RedSecondYellow:
			secondYellow++
		case e.Type == EventRedCard:
			straightRed++
		}
	}
	return yellow, secondYellow, straightRed
}

package matchsim

import (
	"fmt"
	"math/rand"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/prng"
)

// Card rates. Yellow rates are expected cards per side per match; direct red
// rates are per side per match indexed by foul level.
const (
	baseYellowRate      = 1.2
	yellowPerFoulLevel  = 0.25
	yellowPerAggression = 0.01
	minYellowRate       = 0.4
	maxYellowRate       = 3.5

	minInjuryWeeks = 2
	maxInjuryWeeks = 8
)

var defaultDirectRedRates = [model.MaxFouls + 1]float64{0.005, 0.012, 0.025, 0.05} //nolint:gochecknoglobals // read-only table

// cardState is the disciplinary state of one roster slot.
type cardState uint8

const (
	clean cardState = iota
	booked
	sentOff
)

// sideState is the per-side scratch state of one simulation.
type sideState struct {
	team  model.TeamMatchInput
	squad []model.PlayerSimAttrs

	cards      []cardState
	sentOffAt  []int // minute of dismissal, 0 while on the pitch
	injured    []bool
	redMinutes []int

	goalMinutes []int
}

func newSideState(team model.TeamMatchInput) *sideState {
	squad := team.NormalizedSquad()
	return &sideState{
		team:      team,
		squad:     squad,
		cards:     make([]cardState, len(squad)),
		sentOffAt: make([]int, len(squad)),
		injured:   make([]bool, len(squad)),
	}
}

// onPitch reports whether slot i had not been sent off before minute.
func (s *sideState) onPitch(i, minute int) bool {
	return s.sentOffAt[i] == 0 || s.sentOffAt[i] > minute
}

func (s *sideState) player(i int) (int, string) {
	if i < 0 || i >= len(s.squad) {
		return 0, ""
	}
	return s.squad[i].PlayerID, s.squad[i].Name
}

func (s *sideState) yellowRate() float64 {
	if len(s.squad) == 0 {
		return 0
	}
	aggression := 0
	for _, p := range s.squad {
		aggression += p.Attrs.Aggression
	}
	avg := float64(aggression) / float64(len(s.squad))
	rate := baseYellowRate + yellowPerFoulLevel*float64(s.team.Tactic.FoulLevel()) + (avg-model.NeutralRating)*yellowPerAggression
	if rate < minYellowRate {
		return minYellowRate
	}
	if rate > maxYellowRate {
		return maxYellowRate
	}
	return rate
}

// pickOffender chooses a player still on the pitch, weighted by aggression.
func (s *sideState) pickOffender(r *rand.Rand, minute int) int {
	weights := make([]float64, len(s.squad))
	for i, p := range s.squad {
		if s.onPitch(i, minute) {
			weights[i] = float64(p.Attrs.Aggression) + 10
		}
	}
	return prng.Weighted(r, weights)
}

// pickScorer chooses a player still on the pitch, weighted by finishing and shot power.
func (s *sideState) pickScorer(r *rand.Rand, minute int) int {
	weights := make([]float64, len(s.squad))
	for i, p := range s.squad {
		if !s.onPitch(i, minute) {
			continue
		}
		if i == 0 && len(s.squad) > 1 {
			weights[i] = 1
			continue
		}
		weights[i] = float64(p.Attrs.Finishing) + float64(p.Attrs.ShotPower)/2 + 1
	}
	return prng.Weighted(r, weights)
}

// pickInjured chooses a player on the pitch who is not already injured.
func (s *sideState) pickInjured(r *rand.Rand, minute int) int {
	weights := make([]float64, len(s.squad))
	for i := range s.squad {
		if s.onPitch(i, minute) && !s.injured[i] {
			weights[i] = 1
		}
	}
	return prng.Weighted(r, weights)
}

func (s *sideState) sendOff(i, minute int) {
	s.cards[i] = sentOff
	s.sentOffAt[i] = minute
	s.redMinutes = append(s.redMinutes, minute)
}

// playDiscipline walks the match minute by minute and rolls yellow and direct
// red cards for each side. A second yellow on a booked player turns into a red.
func playDiscipline(r *rand.Rand, redRates [model.MaxFouls + 1]float64, home, away *sideState, tl *timeline) {
	sides := []*sideState{home, away}
	yellowP := [2]float64{home.yellowRate() / regulationMinutes, away.yellowRate() / regulationMinutes}
	redP := [2]float64{
		redRates[home.team.Tactic.FoulLevel()] / regulationMinutes,
		redRates[away.team.Tactic.FoulLevel()] / regulationMinutes,
	}

	for minute := 1; minute <= regulationMinutes; minute++ {
		for k, side := range sides {
			yellowRoll, redRoll := r.Float64(), r.Float64()
			if yellowRoll < yellowP[k] {
				bookPlayer(r, side, minute, tl)
			}
			if redRoll < redP[k] {
				if i := side.pickOffender(r, minute); i >= 0 {
					side.sendOff(i, minute)
					id, name := side.player(i)
					tl.add(MatchEvent{
						Minute: minute, Type: EventRedCard, TeamID: side.team.TeamID,
						PlayerID: id, PlayerName: name, RedReason: RedStraight,
						Description: describe("Straight red card for %s", name, side.team.TeamName),
					})
				}
			}
		}
	}
}

func bookPlayer(r *rand.Rand, side *sideState, minute int, tl *timeline) {
	i := side.pickOffender(r, minute)
	if i < 0 {
		return
	}
	id, name := side.player(i)
	tl.add(MatchEvent{
		Minute: minute, Type: EventYellowCard, TeamID: side.team.TeamID,
		PlayerID: id, PlayerName: name,
		Description: describe("Yellow card for %s", name, side.team.TeamName),
	})
	if side.cards[i] == clean {
		side.cards[i] = booked
		return
	}
	side.sendOff(i, minute)
	tl.add(MatchEvent{
		Minute: minute, Type: EventRedCard, TeamID: side.team.TeamID,
		PlayerID: id, PlayerName: name, RedReason: RedSecondYellow,
		Description: describe("Second yellow card for %s, sent off", name, side.team.TeamName),
	})
}

// playInjuries rolls injuries minute by minute for both sides.
func (s *Simulator) playInjuries(r *rand.Rand, home, away *sideState, tl *timeline) {
	p := s.injuryRate / regulationMinutes
	for minute := 1; minute <= regulationMinutes; minute++ {
		for _, side := range []*sideState{home, away} {
			if r.Float64() >= p {
				continue
			}
			i := side.pickInjured(r, minute)
			if i < 0 {
				continue
			}
			side.injured[i] = true
			weeks := prng.Between(r, minInjuryWeeks, maxInjuryWeeks)
			id, name := side.player(i)
			tl.add(MatchEvent{
				Minute: minute, Type: EventInjury, TeamID: side.team.TeamID,
				PlayerID: id, PlayerName: name, InjuryWeeks: weeks,
				Description: fmt.Sprintf("%s (%d weeks)", describe("Injury to %s", name, side.team.TeamName), weeks),
			})
		}
	}
}

type timeline struct {
	events []MatchEvent
}

func (t *timeline) add(e MatchEvent) { t.events = append(t.events, e) } //nolint:gocritic // hugeParam: events are small values

func (t *timeline) count(kind EventType) int {
	n := 0
	for _, e := range t.events {
		if e.Type == kind {
			n++
		}
	}
	return n
}

func describe(format, subject, team string) string {
	if subject == "" {
		subject = "unknown player"
	}
	text := fmt.Sprintf(format, subject)
	if team != "" {
		text += " (" + team + ")"
	}
	return text
}

package service

import (
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
)

// DoubleRoundRobin builds a league calendar where every team hosts every
// other team once. The second half mirrors the first with venues swapped.
// Teams are paired with the circle method; an odd team count gives one team a
// bye each matchday. Fixture ids are matchday*1000 + slot, so they are unique
// within the season.
func DoubleRoundRobin(teams []model.TeamMatchInput, seed int64) [][]matchsim.MatchContext {
	n := len(teams)
	if n < 2 {
		return nil
	}
	slots := make([]int, n, n+1)
	for i := range slots {
		slots[i] = i
	}
	if n%2 == 1 {
		slots = append(slots, -1)
	}
	size := len(slots)
	rounds := size - 1

	calendar := make([][]matchsim.MatchContext, 0, 2*rounds)
	for r := 0; r < rounds; r++ {
		matchday := make([]matchsim.MatchContext, 0, size/2)
		for i := 0; i < size/2; i++ {
			a, b := slots[i], slots[size-1-i]
			if a < 0 || b < 0 {
				continue
			}
			// Alternate venues so no team stays at home for the whole first half.
			if (r+i)%2 == 1 {
				a, b = b, a
			}
			matchday = append(matchday, matchsim.MatchContext{
				FixtureID: fixtureID(r+1, len(matchday)+1),
				Home:      teams[a],
				Away:      teams[b],
				Seed:      seed,
			})
		}
		calendar = append(calendar, matchday)

		// rotate every slot but the first
		last := slots[size-1]
		copy(slots[2:], slots[1:size-1])
		slots[1] = last
	}

	for r := 0; r < rounds; r++ {
		first := calendar[r]
		mirror := make([]matchsim.MatchContext, len(first))
		for i, mc := range first {
			mirror[i] = matchsim.MatchContext{
				FixtureID: fixtureID(rounds+r+1, i+1),
				Home:      mc.Away,
				Away:      mc.Home,
				Seed:      seed,
			}
		}
		calendar = append(calendar, mirror)
	}
	return calendar
}

func fixtureID(matchday, slot int) int64 {
	return int64(matchday)*1000 + int64(slot)
}

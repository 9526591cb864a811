package matchsim

import (
	"errors"
	"fmt"
)

// Sentinel kinds for fixture validation errors.
var (
	ErrEmptyRoster   = errors.New("team has no players")
	ErrDuplicateTeam = errors.New("team cannot play itself")
)

// Validate checks the preconditions callers must hold before Simulate.
// Simulate never fails; it clamps whatever it is given.
func Validate(mc MatchContext) error {
	if len(mc.Home.Squad) == 0 {
		return fmt.Errorf("home team %d: %w", mc.Home.TeamID, ErrEmptyRoster)
	}
	if len(mc.Away.Squad) == 0 {
		return fmt.Errorf("away team %d: %w", mc.Away.TeamID, ErrEmptyRoster)
	}
	if mc.Home.TeamID != 0 && mc.Home.TeamID == mc.Away.TeamID {
		return fmt.Errorf("fixture %d: %w", mc.FixtureID, ErrDuplicateTeam)
	}
	return nil
}

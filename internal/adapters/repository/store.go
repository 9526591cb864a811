// Package repository keeps played fixtures and the league table they produce.
package repository

import (
	"context"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
)

// Points awarded per result.
const (
	PointsWin  = 3
	PointsDraw = 1
)

// Standing is one row of the league table.
type Standing struct {
	Rank         int
	TeamID       int
	TeamName     string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// GoalDifference returns goals for minus goals against.
func (s Standing) GoalDifference() int { return s.GoalsFor - s.GoalsAgainst }

// FixtureRecord is a played fixture as stored.
type FixtureRecord struct {
	Matchday  int
	FixtureID int64
	HomeID    int
	AwayID    int
	Result    matchsim.MatchResult
}

// Store provides read/write access to results and standings.
type Store interface {
	// Register adds a team to the table with no games played. Registering
	// an existing team only refreshes its name.
	Register(ctx context.Context, teamID int, name string)

	// Record stores a played fixture and updates both teams' rows.
	// Returns ErrDuplicateResult if the fixture was already recorded.
	Record(ctx context.Context, matchday int, mc matchsim.MatchContext, res matchsim.MatchResult) error

	// Fixture returns a recorded fixture or ErrNotFound.
	Fixture(ctx context.Context, fixtureID int64) (FixtureRecord, error)

	// Standing returns the current row of a team or ErrNotFound.
	Standing(ctx context.Context, teamID int) (Standing, error)

	// Table returns the top n rows ordered by points, goal difference,
	// goals scored and team id.
	Table(ctx context.Context, n int) ([]Standing, error)

	// Count returns the number of teams in the table.
	Count(ctx context.Context) int

	// Reset clears results and teams; the next season registers its own.
	Reset(ctx context.Context)
}

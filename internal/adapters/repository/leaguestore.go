package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/prng"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: points DESC, goal difference DESC, goals for DESC, then team id
// ASC. "less" means ranks earlier, so an in-order traversal yields the table
// from top to bottom.

type standingKey struct {
	points int
	gd     int
	gf     int
	teamID int
}

func keyOf(s *Standing) standingKey {
	return standingKey{points: s.Points, gd: s.GoalDifference(), gf: s.GoalsFor, teamID: s.TeamID}
}

func less(a, b standingKey) bool {
	if a.points != b.points {
		return a.points > b.points
	}
	if a.gd != b.gd {
		return a.gd > b.gd
	}
	if a.gf != b.gf {
		return a.gf > b.gf
	}
	return a.teamID < b.teamID
}

// treap node
type node struct {
	key   standingKey
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

// priority is a fixed hash of the team id, so the tree shape does not depend
// on insertion order.
func priority(teamID int) uint64 {
	return prng.Mix(int64(teamID))
}

func insert(n *node, k standingKey) *node {
	if n == nil {
		return &node{key: k, prio: priority(k.teamID), size: 1}
	}
	if less(k, n.key) {
		n.left = insert(n.left, k)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, k)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, k standingKey) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.key == k:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, k)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, k)
		}
	case less(k, n.key):
		n.left = deleteNode(n.left, k)
	default:
		n.right = deleteNode(n.right, k)
	}
	fix(n)
	return n
}

// position returns the 1-based table position of k in O(log n).
func position(n *node, k standingKey) int {
	pos := 1
	for n != nil {
		switch {
		case n.key == k:
			return pos + nsize(n.left)
		case less(k, n.key):
			n = n.left
		default:
			pos += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

func collect(n *node, byID map[int]*Standing, out *[]Standing) {
	if n == nil {
		return
	}
	collect(n.left, byID, out)
	if s, ok := byID[n.key.teamID]; ok {
		row := *s
		row.Rank = len(*out) + 1
		*out = append(*out, row)
	}
	collect(n.right, byID, out)
}

// LeagueStore keeps the league table ordered in a treap and publishes an
// immutable copy of the full table after every write.
type LeagueStore struct {
	mu       sync.RWMutex
	root     *node
	byID     map[int]*Standing
	fixtures map[int64]FixtureRecord

	pointsWin  int
	pointsDraw int

	snapshot atomic.Pointer[[]Standing]
}

// NewLeagueStore constructs an empty league store.
func NewLeagueStore(opts ...Option) *LeagueStore {
	s := &LeagueStore{
		byID:       make(map[int]*Standing),
		fixtures:   make(map[int64]FixtureRecord),
		pointsWin:  PointsWin,
		pointsDraw: PointsDraw,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publish()
	return s
}

// Register implements Store.Register.
func (s *LeagueStore) Register(_ context.Context, teamID int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensure(teamID, name)
	s.publish()
}

// ensure returns the row of teamID, inserting it when missing (lock held).
func (s *LeagueStore) ensure(teamID int, name string) *Standing {
	if row, ok := s.byID[teamID]; ok {
		if name != "" {
			row.TeamName = name
		}
		return row
	}
	row := &Standing{TeamID: teamID, TeamName: name}
	s.byID[teamID] = row
	s.root = insert(s.root, keyOf(row))
	return row
}

// Record implements Store.Record in O(log n) expected time.
func (s *LeagueStore) Record(_ context.Context, matchday int, mc matchsim.MatchContext, res matchsim.MatchResult) error { //nolint:gocritic // hugeParam: values mirror the simulator API
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fixtures[mc.FixtureID]; ok {
		metrics.RecordErrorByComponent("repository", "duplicate")
		return fmt.Errorf("fixture %d: %w", mc.FixtureID, ErrDuplicateResult)
	}
	s.fixtures[mc.FixtureID] = FixtureRecord{
		Matchday:  matchday,
		FixtureID: mc.FixtureID,
		HomeID:    mc.Home.TeamID,
		AwayID:    mc.Away.TeamID,
		Result:    res,
	}

	s.apply(s.ensure(mc.Home.TeamID, mc.Home.TeamName), res.HomeGoals, res.AwayGoals)
	s.apply(s.ensure(mc.Away.TeamID, mc.Away.TeamName), res.AwayGoals, res.HomeGoals)
	s.publish()
	return nil
}

// apply adds one result to row and repositions it (lock held).
func (s *LeagueStore) apply(row *Standing, scored, conceded int) {
	s.root = deleteNode(s.root, keyOf(row))
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Won++
		row.Points += s.pointsWin
	case scored == conceded:
		row.Drawn++
		row.Points += s.pointsDraw
	default:
		row.Lost++
	}
	s.root = insert(s.root, keyOf(row))
}

// Fixture implements Store.Fixture.
func (s *LeagueStore) Fixture(_ context.Context, fixtureID int64) (FixtureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.fixtures[fixtureID]
	if !ok {
		return FixtureRecord{}, fmt.Errorf("fixture %d: %w", fixtureID, ErrNotFound)
	}
	return rec, nil
}

// Standing implements Store.Standing.
func (s *LeagueStore) Standing(_ context.Context, teamID int) (Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.byID[teamID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Standing{}, fmt.Errorf("team %d: %w", teamID, ErrNotFound)
	}
	out := *row
	out.Rank = position(s.root, keyOf(row))
	return out, nil
}

// Table implements Store.Table. It reads the last published snapshot and
// never blocks writers.
func (s *LeagueStore) Table(_ context.Context, n int) ([]Standing, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	table := *s.snapshot.Load()
	if n > len(table) {
		n = len(table)
	}
	out := make([]Standing, n)
	copy(out, table[:n])
	return out, nil
}

// Count implements Store.Count.
func (s *LeagueStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Reset implements Store.Reset.
func (s *LeagueStore) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fixtures = make(map[int64]FixtureRecord)
	s.byID = make(map[int]*Standing)
	s.root = nil
	s.publish()
}

// publish rebuilds the table snapshot (lock held).
func (s *LeagueStore) publish() {
	table := make([]Standing, 0, len(s.byID))
	collect(s.root, s.byID, &table)
	s.snapshot.Store(&table)
	metrics.UpdateStandingsTeams(len(table))
}

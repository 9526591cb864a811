package repository

// Option applies a configuration option to the LeagueStore.
type Option func(*LeagueStore)

// WithPoints overrides the points for a win and a draw.
func WithPoints(win, draw int) Option {
	return func(s *LeagueStore) {
		if win > draw && draw >= 0 {
			s.pointsWin = win
			s.pointsDraw = draw
		}
	}
}

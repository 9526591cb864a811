// Package prng derives independent, reproducible random streams from a seed.
//
// Each consumer asks for a stream by mixing the caller's seed with its own
// salts (fixture id, player id, subsystem tag). Adding a new consumer never
// shifts the values another consumer sees.
package prng

import "math/rand"

// Stream salts shared across engines.
const (
	SaltGoals uint64 = iota + 1
	SaltDiscipline
	SaltInjuries
	SaltVAR
	SaltAddedTime
	SaltTimeWasting
	SaltScorers
	SaltGrowth
	SaltYouthAttributes
	SaltYouthPositions
	SaltYouthAges
	SaltSyntheticLeague
)

const golden = 0x9e3779b97f4a7c15

// Mix folds salts into seed with splitmix64 finalisation rounds.
func Mix(seed int64, salts ...uint64) uint64 {
	h := splitmix64(uint64(seed))
	for _, s := range salts {
		h = splitmix64(h ^ s)
	}
	return h
}

// New returns a *rand.Rand seeded from Mix(seed, salts...).
func New(seed int64, salts ...uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(Mix(seed, salts...)))) //nolint:gosec // simulation randomness, not security
}

// Salt turns a signed identifier into a salt.
func Salt(id int64) uint64 { return uint64(id) }

func splitmix64(x uint64) uint64 {
	x += golden
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Chance reports whether a draw from r falls below p.
func Chance(r *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// Between returns a uniform int in [lo, hi]. hi < lo yields lo.
func Between(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Weighted picks an index with probability proportional to weights.
// It returns -1 when every weight is non-positive.
func Weighted(r *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	x := r.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if x < w {
			return i
		}
		x -= w
	}
	return last
}

package development

import (
	"math/rand"
	"sort"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/prng"
)

//nolint:gochecknoglobals // read-only tables
var (
	focusPools = map[TrainingFocus][]model.AttributeKey{
		FocusBalanced:  {model.Quality, model.Passing, model.Stamina, model.Tackling, model.Finishing},
		FocusPhysical:  {model.Speed, model.Stamina, model.Aggression},
		FocusDefensive: {model.Tackling, model.Stamina, model.Aggression},
		FocusTechnical: {model.Passing, model.Dribbling, model.Quality},
		FocusAttacking: {model.Finishing, model.ShotPower, model.Dribbling},
	}
	keeperBalancedPool = []model.AttributeKey{model.Goalkeeping, model.Quality, model.Stamina}
)

// focusPool returns the attributes a focus trains. Goalkeepers always train
// goalkeeping and never the outfield finishing pool.
func focusPool(focus TrainingFocus, keeper bool) []model.AttributeKey {
	if !keeper {
		return focusPools[focus]
	}
	if focus == FocusBalanced {
		return keeperBalancedPool
	}
	return append([]model.AttributeKey{model.Goalkeeping}, focusPools[focus]...)
}

// trainable lists the attributes a player can still improve.
func trainable(a model.Attributes, keeper bool) []model.AttributeKey {
	keys := make([]model.AttributeKey, 0, len(model.AllAttributes))
	for _, k := range model.AllAttributes {
		if k == model.Goalkeeping && !keeper {
			continue
		}
		if a.Get(k) < model.MaxAttribute {
			keys = append(keys, k)
		}
	}
	return keys
}

// growYoung improves a handful of attributes: half the weakest, half from the
// training focus.
func growYoung(r *rand.Rand, a model.Attributes, age int, keeper bool, dc DevelopmentContext) model.Attributes {
	count := prng.Between(r, 1, 3)
	switch dc.Training.Intensity {
	case IntensityHigh:
		count++
	case IntensityLow:
		if count > 1 && prng.Chance(r, 0.4) {
			count--
		}
	}
	if age <= youngCoach && dc.Staff.AssistantCoach >= 70 {
		count++
	}
	count = clampInt(count, 1, 5)

	for _, k := range youngTargets(r, a, keeper, dc.Training.Focus, count) {
		inc := prng.Between(r, 1, 3)
		switch dc.Training.Intensity {
		case IntensityHigh:
			if prng.Chance(r, 0.55) {
				inc++
			}
		case IntensityMedium:
			if prng.Chance(r, 0.2) {
				inc++
			}
		}
		if dc.Staff.AssistantCoach >= 75 && prng.Chance(r, 0.35) {
			inc++
		}
		if age <= academyTeen && dc.Staff.Academy >= 70 && prng.Chance(r, 0.3) {
			inc++
		}
		if inc > 4 {
			inc = 4
		}
		a = a.Add(k, inc, model.MinAttribute)
	}
	return a
}

func youngTargets(r *rand.Rand, a model.Attributes, keeper bool, focus TrainingFocus, count int) []model.AttributeKey {
	candidates := trainable(a, keeper)
	if len(candidates) == 0 {
		return nil
	}
	weakest := append([]model.AttributeKey(nil), candidates...)
	sort.SliceStable(weakest, func(i, j int) bool { return a.Get(weakest[i]) < a.Get(weakest[j]) })

	chosen := make([]model.AttributeKey, 0, count)
	seen := make(map[model.AttributeKey]bool, count)
	take := func(k model.AttributeKey) {
		if len(chosen) < count && !seen[k] {
			seen[k] = true
			chosen = append(chosen, k)
		}
	}

	for _, k := range weakest[:min((count+1)/2, len(weakest))] {
		take(k)
	}
	for _, k := range shuffled(r, focusPool(focus, keeper)) {
		if a.Get(k) < model.MaxAttribute && (keeper || k != model.Goalkeeping) {
			take(k)
		}
	}
	for _, k := range weakest {
		take(k)
	}
	return chosen
}

// growPrime nudges up to a few focus attributes by at most a couple of points.
func growPrime(r *rand.Rand, a model.Attributes, keeper bool, dc DevelopmentContext) model.Attributes {
	count := prng.Between(r, 0, 2)
	switch dc.Training.Intensity {
	case IntensityHigh:
		if prng.Chance(r, 0.35) {
			count++
		}
	case IntensityLow:
		if prng.Chance(r, 0.35) {
			count--
		}
	}
	pool := shuffled(r, focusPool(dc.Training.Focus, keeper))
	count = clampInt(count, 0, len(pool))

	for _, k := range pool[:count] {
		delta := prng.Between(r, -1, 1)
		if delta > 0 && dc.Training.Focus != FocusBalanced && prng.Chance(r, 0.45) {
			delta++
		}
		if delta < 0 && dc.Staff.AssistantCoach >= 75 && prng.Chance(r, 0.4) {
			delta++
		}
		a = a.Add(k, delta, model.MinAttribute)
	}
	return a
}

// declineVeteran wears down speed and stamina; good physios slow the decline.
func declineVeteran(r *rand.Rand, a model.Attributes, age int, dc DevelopmentContext) model.Attributes {
	decline := 1
	if age >= lateCareer {
		decline = 2
	}
	high := dc.Training.Intensity == IntensityHigh
	if high && age >= declineAge {
		decline++
	}
	switch {
	case dc.Staff.Physio >= 85:
		decline--
	case dc.Staff.Physio >= 65 && age >= lateCareer:
		decline--
	}
	if age >= declineAge && decline < 1 {
		decline = 1
	}

	if decline > 0 {
		a = wear(a, model.Speed, decline)
		a = wear(a, model.Stamina, decline)
	}
	if high && dc.Staff.Physio < 40 && age >= lateCareer && prng.Chance(r, 0.35) {
		a = wear(a, model.Aggression, 1)
	}
	if age >= declineAge && prng.Chance(r, 0.25) {
		a = wear(a, model.Quality, 1)
	}
	return a
}

func shuffled(r *rand.Rand, keys []model.AttributeKey) []model.AttributeKey {
	out := append([]model.AttributeKey(nil), keys...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wear lowers k by d without going below 1, or below the current value when it already is.
func wear(a model.Attributes, k model.AttributeKey, d int) model.Attributes {
	return a.Add(k, -d, min(1, a.Get(k)))
}

package main

import (
	"fmt"
	"math/rand"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/development"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/prng"
)

const squadSize = 16

// club is one synthetic team: its matchday input plus what the season-end
// pass needs.
type club struct {
	match  model.TeamMatchInput
	roster []development.DevelopmentPlayer
	dev    development.DevelopmentContext
}

// squadShape lists positions in roster order: goalkeeper first, then
// defenders, midfielders and forwards.
var squadShape = []model.Position{ //nolint:gochecknoglobals // fixed formation
	model.Goalkeeper,
	model.Defender, model.Defender, model.Defender, model.Defender,
	model.Midfielder, model.Midfielder, model.Midfielder, model.Midfielder,
	model.Forward, model.Forward,
	model.Goalkeeper, model.Defender, model.Midfielder, model.Midfielder, model.Forward,
}

// syntheticLeague generates n reproducible clubs of uneven quality for the
// season starting in year.
func syntheticLeague(n int, seed int64, year int) []club {
	clubs := make([]club, n)
	for i := range clubs {
		id := i + 1
		r := prng.New(seed, prng.SaltSyntheticLeague, prng.Salt(int64(id)))
		level := prng.Between(r, 45, 80)
		clubs[i] = newClub(r, id, level, year)
	}
	return clubs
}

func newClub(r *rand.Rand, id, level, year int) club {
	c := club{
		match: model.TeamMatchInput{
			TeamID:   id,
			TeamName: fmt.Sprintf("Club %02d", id),
			Tactic:   model.DefaultTactic(),
		},
		dev: development.DevelopmentContext{
			Staff: development.StaffProfile{
				AssistantCoach: prng.Between(r, 30, 90),
				Physio:         prng.Between(r, 30, 90),
				Psychologist:   prng.Between(r, 30, 90),
				Assistant:      prng.Between(r, 30, 90),
				Secretary:      prng.Between(r, 30, 90),
				Scout:          prng.Between(r, 30, 90),
				Academy:        prng.Between(r, 30, 90),
				Caretaker:      prng.Between(r, 30, 90),
			},
			Training: development.TrainingPlan{
				Intensity: development.TrainingIntensity(prng.Between(r, 0, 2)),
				Focus:     development.TrainingFocus(prng.Between(r, 0, 4)),
			},
		},
	}
	c.match.Tactic.PlayStyle = prng.Between(r, model.StyleDefensive, model.StyleAttacking)
	c.match.Tactic.TimeWasting = prng.Chance(r, 0.15)

	for i, pos := range squadShape[:squadSize] {
		playerID := id*100 + i + 1
		attrs := playerAttributes(r, pos, level)
		name := fmt.Sprintf("%s %s%d", c.match.TeamName, pos, i+1)
		if i < 11 {
			p := model.NewPlayerSimAttrs(playerID, name, attrs)
			p.Form = prng.Between(r, 35, 65)
			p.Morale = prng.Between(r, 35, 65)
			c.match.Squad = append(c.match.Squad, p)
		}
		c.roster = append(c.roster, development.DevelopmentPlayer{
			ID:        playerID,
			Name:      name,
			BirthYear: year - prng.Between(r, 17, 37),
			Position:  pos,
			Attrs:     attrs,
		})
	}
	return c
}

// playerAttributes spreads attributes around level, favouring the ones the
// position relies on.
func playerAttributes(r *rand.Rand, pos model.Position, level int) model.Attributes {
	var a model.Attributes
	for _, k := range model.AllAttributes {
		a = a.With(k, level+prng.Between(r, -12, 8))
	}
	boost := func(keys ...model.AttributeKey) {
		for _, k := range keys {
			a = a.With(k, a.Get(k)+prng.Between(r, 4, 12))
		}
	}
	switch pos {
	case model.Goalkeeper:
		a = a.With(model.Goalkeeping, level+prng.Between(r, 5, 15))
	case model.Defender:
		boost(model.Tackling, model.Stamina)
		a = a.With(model.Goalkeeping, prng.Between(r, 1, 15))
	case model.Midfielder:
		boost(model.Passing, model.Quality)
		a = a.With(model.Goalkeeping, prng.Between(r, 1, 15))
	case model.Forward:
		boost(model.Finishing, model.Dribbling)
		a = a.With(model.Goalkeeping, prng.Between(r, 1, 15))
	}
	return a.Clamp()
}

func teamInputs(clubs []club) []model.TeamMatchInput {
	out := make([]model.TeamMatchInput, len(clubs))
	for i, c := range clubs {
		out[i] = c.match
	}
	return out
}

package development

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/prng"
)

const (
	maxFloorBonus  = 6
	maxConsistency = 3
)

//nolint:gochecknoglobals // read-only tables
var (
	youthNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("androidfutbol/youth"))

	// Squad template 2 GK : 6 DEF : 5 MID : 4 FWD.
	youthPositions       = []model.Position{model.Goalkeeper, model.Defender, model.Midfielder, model.Forward}
	youthPositionWeights = []float64{2, 6, 5, 4}
)

// attrRange is an inclusive sampling range.
type attrRange struct{ lo, hi int }

// youthRanges returns the raw sampling range of every attribute for pos.
func youthRanges(pos model.Position) map[model.AttributeKey]attrRange {
	ranges := map[model.AttributeKey]attrRange{
		model.Speed:       {35, 50},
		model.Stamina:     {35, 50},
		model.Aggression:  {30, 55},
		model.Quality:     {35, 55},
		model.Finishing:   {20, 45},
		model.Dribbling:   {20, 45},
		model.ShotPower:   {20, 45},
		model.Passing:     {25, 50},
		model.Tackling:    {25, 50},
		model.Goalkeeping: {1, 8},
	}
	switch pos {
	case model.Goalkeeper:
		ranges[model.Goalkeeping] = attrRange{35, 55}
		ranges[model.Finishing] = attrRange{5, 20}
		ranges[model.Dribbling] = attrRange{5, 20}
		ranges[model.ShotPower] = attrRange{5, 20}
		ranges[model.Passing] = attrRange{10, 30}
		ranges[model.Tackling] = attrRange{10, 30}
	case model.Defender:
		ranges[model.Tackling] = attrRange{35, 55}
	case model.Midfielder:
		ranges[model.Passing] = attrRange{30, 55}
	case model.Forward:
		ranges[model.Finishing] = attrRange{30, 50}
	}
	return ranges
}

// GenerateYouthPlayers creates count academy players for teamSlotID. A
// non-positive slot or count yields an empty slice. Better academy and scouting
// raise the floor of every attribute; a better assistant coach averages more
// draws, which narrows the spread.
func (e *Engine) GenerateYouthPlayers(teamSlotID, count, seasonStartYear int, seed int64, dc DevelopmentContext) []YouthPlayer {
	if teamSlotID <= 0 || count <= 0 {
		return []YouthPlayer{}
	}
	staff := dc.Staff.normalize()
	floor := min(maxFloorBonus, staff.Academy/20+staff.Scout/30)
	consistency := min(maxConsistency, staff.AssistantCoach/30)

	slot := prng.Salt(int64(teamSlotID))
	attrRNG := prng.New(seed, prng.SaltYouthAttributes, slot)
	posRNG := prng.New(seed, prng.SaltYouthPositions, slot)
	ageRNG := prng.New(seed, prng.SaltYouthAges, slot)

	out := make([]YouthPlayer, 0, count)
	for i := 0; i < count; i++ {
		pos := youthPositions[prng.Weighted(posRNG, youthPositionWeights)]
		age := prng.Between(ageRNG, e.youthMinAge, e.youthMaxAge)
		number := prng.Between(ageRNG, 100, 999)

		out = append(out, YouthPlayer{
			ID:         youthID(seed, teamSlotID, seasonStartYear, i),
			TeamSlotID: teamSlotID,
			Name:       fmt.Sprintf("Youth %03d", number),
			BirthYear:  seasonStartYear - age,
			Position:   pos,
			Attrs:      sampleYouthAttributes(attrRNG, pos, floor, consistency),
		})
	}
	return out
}

func sampleYouthAttributes(r *rand.Rand, pos model.Position, floor, consistency int) model.Attributes {
	ranges := youthRanges(pos)
	var a model.Attributes
	for _, k := range model.AllAttributes {
		bonus := floor
		if k == model.Goalkeeping && pos != model.Goalkeeper {
			bonus = 0
		}
		v := sampleAttr(r, ranges[k], consistency) + bonus
		a = a.With(k, max(1, v))
	}
	return a
}

// sampleAttr averages consistency+1 uniform draws, rounding half up.
func sampleAttr(r *rand.Rand, rng attrRange, consistency int) int {
	n := consistency + 1
	sum := 0
	for i := 0; i < n; i++ {
		sum += prng.Between(r, rng.lo, rng.hi)
	}
	return (sum + n/2) / n
}

func youthID(seed int64, teamSlotID, season, index int) uuid.UUID {
	return uuid.NewSHA1(youthNamespace, []byte(fmt.Sprintf("%d/%d/%d/%d", seed, teamSlotID, season, index)))
}
